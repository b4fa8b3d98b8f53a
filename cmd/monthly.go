package cmd

import (
	"fmt"

	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Income, expenses, and net per month",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	_, view, err := loadTransactions()
	if err != nil {
		return err
	}

	months := pipeline.AggregateMonths(view)
	if len(months) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY  %s", windowLabel())))
	fmt.Println()

	rows := make([][]string, 0, len(months))
	nets := make([]float64, 0, len(months))
	for _, m := range months {
		net := cli.FormatINR(m.Net())
		if m.Net().IsNegative() {
			net = cli.RenderExpense(net)
		} else {
			net = cli.RenderIncome(net)
		}
		rows = append(rows, []string{
			cli.FormatMonth(m.Month),
			cli.FormatINR(m.Income),
			cli.FormatINR(m.Expenses),
			net,
		})
		nets = append(nets, m.Net().InexactFloat64())
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Expenses", "Net"},
		Rows:    rows,
	}))

	if len(nets) > 1 {
		fmt.Printf("\n  Net trend  %s\n", cli.RenderSparkline(nets))
	}
	return nil
}
