package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/rcsched/internal/config"
	"github.com/alexiusacademia/rcsched/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rcsched",
	Short: "Reinforced Concrete Beam Reinforcement Scheduler",
	Long: `rcsched - Reinforced Concrete Beam Reinforcement Scheduler

A CLI tool that turns the required steel areas reported by a frame
analysis into a practical reinforcement schedule for every beam:

  - Flexural bars (top and bottom, left/middle/right stations)
  - Stirrups with leg count and spacing
  - Side-face bars for deep beams
  - Material quantities

Design follows ACI 318 detailing rules. Beams flagged as overstressed
by the analysis are reported, not designed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Log.Format = logFormat
		}
		logger = config.SetupLogger(cfg.Log, os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   rcsched v%-47s║\n", version.Version)
		fmt.Println("  ║   Reinforced Concrete Beam Reinforcement Scheduler        ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Turns analysis steel demands into a beam reinforcement schedule.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Flexural, stirrup and side-face bar selection per station")
		fmt.Println("    • ETABS concrete beam design export import (.xlsx)")
		fmt.Println("    • Schedule and quantities export to Excel and PDF")
		fmt.Println("    • Cross-section diagrams (ASCII, png, svg, pdf)")
		fmt.Println()
		fmt.Println("  Use 'rcsched --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./rcsched.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}
