package cmd

import (
	"fmt"

	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, totals, and spending by category",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	all, view, err := loadTransactions()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("\n  No transactions yet.")
		fmt.Println("  Add one with `zenfin add --amount 500 --description Groceries`.")
		return nil
	}

	stats := pipeline.Aggregate(view)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ZENFIN  %s", windowLabel())))
	fmt.Println()

	balance := cli.FormatINR(stats.TotalBalance)
	if stats.TotalBalance.IsNegative() {
		balance = cli.RenderExpense(balance)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Transactions", fmt.Sprintf("%d", len(view))},
			{"---"},
			{"Income", cli.RenderIncome(cli.FormatINR(stats.TotalIncome))},
			{"Expenses", cli.RenderExpense(cli.FormatINR(stats.TotalExpenses))},
			{"---"},
			{"Balance", balance},
		},
	}))

	breakdown := pipeline.SortedBreakdown(stats.CategoryBreakdown)
	if len(breakdown) == 0 {
		fmt.Println()
		fmt.Println(cli.RenderMuted("  No expenses in this period."))
		return nil
	}

	top := breakdown[0].Amount.InexactFloat64()
	rows := make([][]string, 0, len(breakdown))
	for _, c := range breakdown {
		share := 0.0
		if stats.TotalExpenses.GreaterThan(decimal.Zero) {
			share = c.Amount.Div(stats.TotalExpenses).InexactFloat64()
		}
		rows = append(rows, []string{
			c.Category,
			cli.FormatINR(c.Amount),
			cli.FormatPercent(share),
			cli.RenderHorizontalBar(c.Amount.InexactFloat64(), top, 20),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Spending by Category",
		Headers:  []string{"Category", "Amount", "Share", ""},
		Rows:     rows,
		LeftCols: 1,
	}))

	return nil
}
