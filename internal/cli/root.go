package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"kalshi-trader/internal/config"
	"kalshi-trader/internal/logging"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "trader-api",
		Short: "Kalshi Trader API - trading backend with betting statistics",
		Long: `Kalshi Trader API serves account, position and order endpoints over HTTP,
backed by an in-memory order registry, and computes betting statistics
(odds conversions, expected value, Kelly stake sizing).

Use 'trader-api serve' to start the HTTP server.
Use 'trader-api odds' to run the betting math from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/kalshi-trader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newOddsCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Kalshi Trader API v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Server Configuration")
	output.Printf("  Listen:        %s\n", cfg.Server.Addr())
	output.Printf("  CORS Origins:  %v\n", cfg.Server.CORSOrigins)
	output.Printf("  Static Dir:    %s\n", cfg.Server.StaticDir)
	output.Println()

	output.Bold("Trading Configuration")
	output.Printf("  Currency:       %s\n", cfg.Trading.Currency)
	output.Printf("  Initial Cash:   %.2f\n", cfg.Trading.InitialCash)
	output.Printf("  Simulate Fills: %v\n", cfg.Trading.SimulateFills)
	output.Println()

	output.Bold("Log Configuration")
	output.Printf("  Level:   %s\n", cfg.Log.Level)
	output.Printf("  Console: %v\n", cfg.Log.Console)
	output.Printf("  File:    %v\n", cfg.Log.File)

	return nil
}
