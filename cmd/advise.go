package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/tui/components"

	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Get a financial health score and savings tips",
	RunE:  runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	// Advice always looks at the full history, not the --days window.
	all, _, err := loadTransactions()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("\n  No transactions to analyze yet.")
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := newAdviser(cfg).Advise(ctx, all)
	ins := res.Insight

	fmt.Println()
	fmt.Println(cli.RenderTitle("SMART ADVISOR"))
	fmt.Println()

	score := components.ClampScore(ins.HealthScore)
	fmt.Printf("  Health score  %d/100  %s\n", score, components.ScoreLabel(score))
	fmt.Println()
	fmt.Printf("  %s\n", ins.Summary)

	if len(ins.Tips) > 0 {
		fmt.Println()
		for i, tip := range ins.Tips {
			fmt.Printf("  %d. %s\n", i+1, tip)
		}
	}

	if res.Fallback() {
		fmt.Println()
		fmt.Println(cli.RenderMuted("  General tips. Keep adding transactions for more personal advice."))
	}
	return nil
}
