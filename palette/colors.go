package palette

import "image/color"

// Shade multipliers applied to every base map colour, out of 255. The index
// of a shaded colour is base*4 + shade.
var shades = [...]uint32{180, 220, 255, 135}

// Base map colours in identifier order. Base 0 is transparent.
var baseColors = [...]uint32{
	0x000000, // none
	0x7fb238, // grass
	0xf7e9a3, // sand
	0xc7c7c7, // wool
	0xff0000, // fire
	0xa0a0ff, // ice
	0xa7a7a7, // metal
	0x007c00, // plant
	0xffffff, // snow
	0xa4a8b8, // clay
	0x976d4d, // dirt
	0x707070, // stone
	0x4040ff, // water
	0x8f7748, // wood
	0xfffcf5, // quartz
	0xd87f33, // orange
	0xb24cd8, // magenta
	0x6699d8, // light blue
	0xe5e533, // yellow
	0x7fcc19, // light green
	0xf27fa5, // pink
	0x4c4c4c, // gray
	0x999999, // light gray
	0x4c7f99, // cyan
	0x7f3fb2, // purple
	0x334cb2, // blue
	0x664c33, // brown
	0x667f33, // green
	0x993333, // red
	0x191919, // black
	0xfaee4d, // gold
	0x5cdbd5, // diamond
	0x4a80ff, // lapis
	0x00d93a, // emerald
	0x815631, // podzol
	0x700200, // nether
	0xd1b1a1, // white terracotta
	0x9f5224, // orange terracotta
	0x95576c, // magenta terracotta
	0x706c8a, // light blue terracotta
	0xba8524, // yellow terracotta
	0x677535, // light green terracotta
	0xa04d4e, // pink terracotta
	0x392923, // gray terracotta
	0x876b62, // light gray terracotta
	0x575c5c, // cyan terracotta
	0x7a4958, // purple terracotta
	0x4c3e5c, // blue terracotta
	0x4c3223, // brown terracotta
	0x4c522a, // green terracotta
	0x8e3c2e, // red terracotta
	0x251610, // black terracotta
	0xbd3031, // crimson nylium
	0x943f61, // crimson stem
	0x5c191d, // crimson hyphae
	0x167e86, // warped nylium
	0x3a8e8c, // warped stem
	0x562c3e, // warped hyphae
	0x14b485, // warped wart block
	0x646464, // deepslate
	0xd8af93, // raw iron
	0x7fa796, // glow lichen
}

// MapColors is the palette understood by map displays: every base colour in
// each of its four shades.
var MapColors = mapColors()

func mapColors() color.Palette {
	p := make(color.Palette, 0, len(baseColors)*len(shades))
	for i, c := range baseColors {
		for _, s := range shades {
			if i == 0 {
				p = append(p, color.RGBA{})
				continue
			}
			p = append(p, color.RGBA{
				R: uint8((c >> 16 & 0xff) * s / 255),
				G: uint8((c >> 8 & 0xff) * s / 255),
				B: uint8((c & 0xff) * s / 255),
				A: 0xff,
			})
		}
	}
	return p
}
