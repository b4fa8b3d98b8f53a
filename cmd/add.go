package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/zenfin/internal/model"
	"github.com/theirongolddev/zenfin/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagAddAmount      string
	flagAddDescription string
	flagAddCategory    string
	flagAddType        string
	flagAddDate        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense",
	Example: `  zenfin add --amount 450 --description "Weekly groceries" --category "Food & Drink"
  zenfin add --type income --amount 85000 --description Salary --category Salary`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount in rupees")
	addCmd.Flags().StringVarP(&flagAddDescription, "description", "m", "", "What it was for")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", model.Categories[0],
		"One of: "+strings.Join(model.Categories, ", "))
	addCmd.Flags().StringVarP(&flagAddType, "type", "t", "expense", "income or expense")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Date as YYYY-MM-DD (default today)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	now := time.Now()
	draft := model.NewDraft(now)
	draft.Amount = flagAddAmount
	draft.Description = flagAddDescription
	draft.Category = flagAddCategory
	typ := model.Type(strings.ToUpper(strings.TrimSpace(flagAddType)))
	if !typ.Valid() {
		return fmt.Errorf("invalid --type %q: want income or expense", flagAddType)
	}
	draft.Type = typ
	if date := strings.TrimSpace(flagAddDate); date != "" {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", flagAddDate)
		}
		draft.Date = date
	}

	t, ok := draft.Build(now)
	if !ok {
		// Same rule as the entry form: incomplete input is dropped quietly.
		log.Debug().Str("component", "cmd").Msg("add: incomplete input ignored")
		return nil
	}

	s, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := addTo(s, t); err != nil {
		return err
	}
	fmt.Println(t.ID)
	return nil
}

// addTo prepends t to the persisted list. Nothing is written when the
// existing list cannot be read.
func addTo(s transactionStore, t model.Transaction) error {
	txs, err := s.Load()
	if err != nil {
		return err
	}
	txs = store.Append(txs, t)
	if err := s.Save(txs); err != nil {
		return err
	}

	log.Info().Str("component", "cmd").Str("id", t.ID).Int("count", len(txs)).Msg("transaction added")
	return nil
}
