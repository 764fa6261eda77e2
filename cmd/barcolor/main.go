package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rodrigo-brito/barcolor"
	"github.com/rodrigo-brito/barcolor/config"
	"github.com/rodrigo-brito/barcolor/feed"
	"github.com/rodrigo-brito/barcolor/plot"
	"github.com/rodrigo-brito/barcolor/plot/indicator"
	"github.com/rodrigo-brito/barcolor/tools"
	"github.com/rodrigo-brito/barcolor/tools/log"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "barcolor",
		HelpName: "barcolor",
		Usage:    "Replay candles through the visibility-aware bar color indicator",
		Commands: []*cli.Command{
			{
				Name:     "replay",
				HelpName: "replay",
				Usage:    "Replay a CSV file and print the painted bars",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "eg. ./btc-1h.csv",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "pair",
						Aliases:  []string{"p"},
						Usage:    "eg. BTCUSDT",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "timeframe",
						Aliases: []string{"t"},
						Usage:   "chart timeframe, eg. 1h",
						Value:   "1h",
					},
					&cli.StringFlag{
						Name:  "source-timeframe",
						Usage: "timeframe of the CSV rows (default: same as --timeframe)",
					},
					&cli.BoolFlag{
						Name:  "heikin-ashi",
						Usage: "convert candles to Heikin Ashi",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "eg. ./barcolor.yml",
					},
					&cli.IntFlag{
						Name:  "period",
						Usage: "moving average period, overrides the config file",
					},
					&cli.IntFlag{
						Name:  "hide-at",
						Usage: "hide the indicator once the chart has this many bars",
					},
					&cli.IntFlag{
						Name:  "show-at",
						Usage: "show the indicator again once the chart has this many bars",
					},
					&cli.IntFlag{
						Name:  "preload",
						Usage: "number of candles loaded as history before the replay starts",
					},
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "remove the indicator when the replay finishes",
					},
					&cli.IntFlag{
						Name:  "rows",
						Usage: "number of bars printed in the summary",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "show a progress bar",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "enable debug logs",
					},
				},
				Action: replay,
			},
		},
	}
}

func replay(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}
	if c.IsSet("period") {
		cfg.Period = c.Int("period")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	pair := c.String("pair")
	timeframe := c.String("timeframe")
	sourceTimeframe := c.String("source-timeframe")
	if sourceTimeframe == "" {
		sourceTimeframe = timeframe
	}

	csvFeed, err := feed.NewCSVFeed(timeframe, feed.PairFeed{
		Pair:       pair,
		File:       c.String("file"),
		Timeframe:  sourceTimeframe,
		HeikinAshi: c.Bool("heikin-ashi"),
	})
	if err != nil {
		return err
	}

	candles, err := csvFeed.Candles(pair, timeframe)
	if err != nil {
		return err
	}

	chart := plot.NewChart(append(cfg.ChartOptions(), plot.WithPair(pair))...)
	ind, err := indicator.NewVisibilityAware(chart, cfg.IndicatorOptions()...)
	if err != nil {
		return err
	}

	options := []barcolor.Option{
		barcolor.WithPreload(c.Int("preload")),
	}
	if c.Bool("debug") {
		options = append(options, barcolor.WithLogLevel(log.DebugLevel))
	}
	if c.Bool("progress") {
		options = append(options, barcolor.WithProgressBar())
	}
	if c.Bool("clear") {
		options = append(options, barcolor.WithClearOnFinish())
	}
	if c.IsSet("hide-at") || c.IsSet("show-at") {
		scheduler := tools.NewScheduler(ind.ID())
		if c.IsSet("hide-at") {
			scheduler.HideAt(c.Int("hide-at"))
		}
		if c.IsSet("show-at") {
			scheduler.ShowAt(c.Int("show-at"))
		}
		options = append(options, barcolor.WithScheduler(scheduler))
	}

	log.Infof("replaying %d candles of %s (%s) with %s", len(candles), pair, timeframe, ind.Name())

	session := barcolor.NewSession(chart, ind, options...)
	if err := session.Run(c.Context, candles); err != nil {
		return err
	}

	session.Summary(c.App.Writer, c.Int("rows"))
	return nil
}
