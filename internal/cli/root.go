package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alphaback/internal/config"
	"alphaback/internal/registry"
	"alphaback/strategies/buyhold"
	"alphaback/strategies/meanrev"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func NewRootCmd() *cobra.Command {
	rf := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "alphaback",
		Short:         "Strategy backtesting service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rf.configPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rf.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	cmd.AddCommand(
		newServeCmd(rf),
		newRunCmd(rf),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("alphaback (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRegistry wires the built-in strategies and the plugin directory, if any.
func newRegistry(pluginDir string) *registry.Registry {
	r := registry.New(pluginDir)
	r.Register("buyhold", func() any { return buyhold.New() })
	r.Register("meanrev", func() any { return meanrev.New() })
	return r
}

func loadConfig(rf *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(rf.configPath)
	if err != nil {
		return nil, err
	}
	if rf.logLevel != "" {
		cfg.LogLevel = rf.logLevel
	}
	return cfg, nil
}
