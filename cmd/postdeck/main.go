package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"postdeck/cmd/postdeck/dash"
	"postdeck/internal/config"
	"postdeck/internal/logging"
	"postdeck/internal/placeholder"
)

var (
	// Global flags
	apiURL     string
	reqTimeout time.Duration
	cfgPath    string
	verbose    bool

	// Resolved at PersistentPreRunE time
	cfg config.Config

	// Logger for the non-interactive subcommands
	logger *zap.Logger
)

// rootCmd launches the interactive dashboard when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "postdeck",
	Short: "postdeck - a terminal dashboard for the JSONPlaceholder demo API",
	Long: `postdeck is a three-pane terminal dashboard over the JSONPlaceholder
demo API: pick a user, browse and create their posts, and read the
comments on any post.

The sandbox echoes created posts without persisting them, so postdeck
keeps created posts in the session list with locally assigned ids.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.DebugMode = true
			cfg.Logging.Level = "debug"
		}

		// The dashboard owns the terminal, so it logs to per-category
		// files under the state directory instead of stdout.
		if cmd == cmd.Root() {
			return logging.Initialize(config.StateDir(), cfg.LoggingSettings())
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Demo API base URL (default from config)")
	rootCmd.PersistentFlags().DurationVar(&reqTimeout, "timeout", 0, "Per-request timeout (default from config)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(overviewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and layers the global flags on top.
func loadConfig() (config.Config, error) {
	c, err := config.Load(configPath())
	if err != nil {
		return config.Config{}, err
	}
	if apiURL != "" {
		c.APIBaseURL = apiURL
	}
	if reqTimeout > 0 {
		c.TimeoutSeconds = int(reqTimeout.Seconds())
		if c.TimeoutSeconds < 1 {
			c.TimeoutSeconds = 1
		}
	}
	return c, nil
}

func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultPath()
}

func newClient() *placeholder.Client {
	return placeholder.New(cfg.APIBaseURL, cfg.Timeout())
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live config reload is best effort; the dashboard runs fine without it.
	updates, err := config.Watch(ctx, configPath())
	if err != nil {
		logging.ConfigError("config watch unavailable: %v", err)
		updates = nil
	}

	return dash.Run(cfg, newClient(), updates)
}
