package cmd

import (
	"fmt"

	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/spf13/cobra"
)

var flagListLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Transaction history, newest first",
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "l", 0, "Show at most this many entries (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	_, view, err := loadTransactions()
	if err != nil {
		return err
	}
	if len(view) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	shown := view
	if flagListLimit > 0 && len(shown) > flagListLimit {
		shown = shown[:flagListLimit]
	}

	rows := make([][]string, 0, len(shown))
	for _, t := range shown {
		amount := cli.FormatSigned(t)
		if t.Type == model.Income {
			amount = cli.RenderIncome(amount)
		} else {
			amount = cli.RenderExpense(amount)
		}
		rows = append(rows, []string{
			cli.ShortID(t.ID),
			cli.FormatDate(t.Date),
			cli.Truncate(t.Description, 32),
			t.Category,
			amount,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  %s", windowLabel())))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Date", "Description", "Category", "Amount"},
		Rows:     rows,
		LeftCols: 4,
	}))

	if len(shown) < len(view) {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  %d of %d shown", len(shown), len(view))))
	}
	return nil
}
