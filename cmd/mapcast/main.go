package main

import (
	"context"
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/mapcast"
	"github.com/bodgit/mapcast/dither"
	"github.com/bodgit/mapcast/frame"
	"github.com/bodgit/mapcast/palette"
	"github.com/bodgit/mapcast/tile"
	"github.com/urfave/cli/v2"
)

const defaultDB = "mapcast.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newTable(c *cli.Context) (*palette.Table, error) {
	if c.String("adaptive") == "" {
		return palette.Default(), nil
	}

	f, err := os.Open(c.String("adaptive"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	p, err := palette.Adaptive(m, c.Int("colors"))
	if err != nil {
		return nil, err
	}

	return palette.New(p)
}

func gridFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "algorithm",
			EnvVars: []string{"MAPCAST_ALGORITHM"},
			Value:   dither.FloydSteinberg.String(),
			Usage:   "dithering algorithm, one of " + strings.Join(dither.Algorithms(), ", "),
		},
		&cli.IntFlag{
			Name:    "width",
			EnvVars: []string{"MAPCAST_WIDTH"},
			Value:   5,
			Usage:   "grid width in tiles",
		},
		&cli.IntFlag{
			Name:    "height",
			EnvVars: []string{"MAPCAST_HEIGHT"},
			Value:   5,
			Usage:   "grid height in tiles",
		},
		&cli.IntFlag{
			Name:    "block-width",
			EnvVars: []string{"MAPCAST_BLOCK_WIDTH"},
			Usage:   "frame width in pixels, defaults to the grid width",
		},
		&cli.IntFlag{
			Name:    "block-height",
			EnvVars: []string{"MAPCAST_BLOCK_HEIGHT"},
			Usage:   "frame height in pixels, defaults to the grid height",
		},
		&cli.StringFlag{
			Name:  "adaptive",
			Usage: "derive the palette from this image instead of using map colours",
		},
		&cli.IntFlag{
			Name:  "colors",
			Value: 16,
			Usage: "number of colours in an adaptive palette",
		},
	}
}

func mapConfig(c *cli.Context) (mapcast.MapConfig, int, error) {
	algorithm, err := dither.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return mapcast.MapConfig{}, 0, err
	}

	grid := mapcast.Dimension{Width: c.Int("width"), Height: c.Int("height")}

	width, height := c.Int("block-width"), c.Int("block-height")
	if width == 0 {
		width = grid.Width * tile.Size
	}
	if height == 0 {
		height = grid.Height * tile.Size
	}

	return mapcast.MapConfig{
		Algorithm:  algorithm,
		Delay:      c.Duration("delay"),
		BlockWidth: width,
		Grid:       grid,
		Viewers:    mapcast.NewViewers(c.StringSlice("viewer")...),
	}, height, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "mapcast"
	app.Usage = "Dither video onto map displays"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MAPCAST_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to identifier database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "dither",
			Usage:       "Dither an image and write a PNG preview",
			Description: "",
			ArgsUsage:   "IMAGE OUTPUT",
			Flags:       gridFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				table, err := newTable(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				cfg, height, err := mapConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := frame.Load(c.Args().Get(0), cfg.BlockWidth, height)
				if err != nil {
					return cli.Exit(err, 1)
				}

				data, err := cfg.Algorithm.DitherIndexed(table, f.Pix, f.Width)
				if err != nil {
					return cli.Exit(err, 1)
				}

				tiles, err := tile.Split(data.Bytes(), f.Width, image.Pt(cfg.Grid.Width, cfg.Grid.Height), 0)
				if err != nil {
					return cli.Exit(err, 1)
				}

				out, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer out.Close()

				if err := tile.Encode(out, tiles, image.Pt(cfg.Grid.Width, cfg.Grid.Height), table.Palette()); err != nil {
					return cli.Exit(err, 1)
				}

				e, err := table.MeanError(f.Pix, data.Bytes())
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Printf("%s: %dx%d pixels, %s, mean error %.2f\n", c.Args().Get(0), f.Width, f.Height(), cfg.Algorithm, e)

				return nil
			},
		},
		{
			Name:        "palette",
			Usage:       "Print the palette",
			Description: "",
			Action: func(c *cli.Context) error {
				table := palette.Default()
				for i := 0; i < table.Len(); i++ {
					col := table.ColorAt(uint8(i))
					if col>>24 == 0 {
						fmt.Printf("%3d transparent\n", i)
						continue
					}
					fmt.Printf("%3d %s\n", i, palette.Hex(col))
				}
				return nil
			},
		},
		{
			Name:        "play",
			Usage:       "Play an image sequence on a grid of maps",
			Description: "",
			ArgsUsage:   "NAME DIRECTORY",
			Flags: append(gridFlags(),
				&cli.DurationFlag{
					Name:    "delay",
					EnvVars: []string{"MAPCAST_DELAY"},
					Value:   mapcast.Delay0,
					Usage:   "minimum interval between frames",
				},
				&cli.StringSliceFlag{
					Name:  "viewer",
					Usage: "recipient of the frames, may be repeated",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				table, err := newTable(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				cfg, height, err := mapConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, err := mapcast.New(c.String("db"), table, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				name := c.Args().Get(0)
				sink := &logSink{logger: log.New(os.Stdout, "", 0)}

				cb, err := m.Maps(name, cfg, sink)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Release(name)

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()

				if err := mapcast.PlayDirectory(ctx, cb, c.Args().Get(1), cfg.BlockWidth, height); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "alloc",
			Usage:       "Allocate identifiers for a display",
			Description: "",
			ArgsUsage:   "NAME COUNT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				count, err := strconv.Atoi(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}

				r, err := mapcast.NewRegistry(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer r.Close()

				start, err := r.Allocate(c.Args().Get(0), count)
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Printf("%s: %d-%d\n", c.Args().Get(0), start, int(start)+count-1)

				return nil
			},
		},
		{
			Name:        "release",
			Usage:       "Release the identifiers of a display",
			Description: "",
			ArgsUsage:   "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				r, err := mapcast.NewRegistry(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer r.Close()

				if err := r.Release(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
