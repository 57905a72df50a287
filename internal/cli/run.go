package cli

import (
	"encoding/json"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"alphaback/internal/engine"
	"alphaback/types"
)

type runFlags struct {
	symbols     []string
	strategy    string
	granularity string
	capital     float64
}

func newRunCmd(rf *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single simulation from the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rf)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			capital := cfg.Simulation.StartingCapital
			if flags.capital > 0 {
				capital = flags.capital
			}
			timeout, err := cfg.Simulation.ParseDecideTimeout()
			if err != nil {
				return err
			}

			boxed, err := newRegistry(cfg.Simulation.PluginDir).Resolve(flags.strategy)
			if err != nil {
				return err
			}

			prov, cleanup, err := buildProvider(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			feeds := make([]types.PriceSeries, 0, len(flags.symbols))
			for _, symbol := range flags.symbols {
				series, err := prov.Fetch(cmd.Context(), symbol, types.Granularity(flags.granularity))
				if err != nil {
					return err
				}
				feeds = append(feeds, series)
			}

			bar := initProgressBar()
			eng, err := engine.New(boxed,
				engine.WithStartingCapital(decimal.NewFromFloat(capital)),
				engine.WithDecideTimeout(timeout),
				engine.WithProgress(func(day string) { bar.Add(1) }),
			)
			if err != nil {
				return err
			}

			result, err := eng.Run(cmd.Context(), feeds)
			if err != nil {
				return err
			}
			bar.Finish()

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringSliceVar(&flags.symbols, "symbols", nil, "Instrument symbols to simulate")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "Strategy identifier")
	cmd.Flags().StringVar(&flags.granularity, "granularity", string(types.GranularityDaily), "Price feed granularity")
	cmd.Flags().Float64Var(&flags.capital, "capital", 0, "Starting capital (defaults to config)")
	cmd.MarkFlagRequired("symbols")
	cmd.MarkFlagRequired("strategy")

	return cmd
}

// The total number of trading days is only known once the feeds are aligned,
// so the bar runs in indeterminate mode.
func initProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
