// Package cmd implements the zenfin CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/zenfin/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:      %s\n", config.DBPath(cfg))
	if flagNoPersist {
		fmt.Println("    Persistence:   disabled (--no-persist)")
	}
	fmt.Printf("    Recent count:  %d\n", cfg.General.RecentCount)
	fmt.Println()

	fmt.Println("  [Advice]")
	fmt.Printf("    Provider:         %s\n", cfg.Advice.Provider)
	if cfg.Advice.Model != "" {
		fmt.Printf("    Model:            %s\n", cfg.Advice.Model)
	} else {
		fmt.Println("    Model:            provider default")
	}
	if cfg.Advice.BaseURL != "" {
		fmt.Printf("    Base URL:         %s\n", cfg.Advice.BaseURL)
	}
	if key := config.GetAPIKey(cfg); key != "" {
		fmt.Printf("    API key:          %s\n", config.MaskKey(key))
	} else {
		fmt.Println("    API key:          not configured")
	}
	fmt.Printf("    Min transactions: %d\n", cfg.Advice.MinTransactions)
	if t := cfg.Advice.Timeout(); t > 0 {
		fmt.Printf("    Timeout:          %s\n", t)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", config.LogPath(cfg))
	fmt.Println()

	fmt.Println("  Run `zenfin setup` to reconfigure.")
	return nil
}
