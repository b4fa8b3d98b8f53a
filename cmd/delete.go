package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/model"
	"github.com/theirongolddev/zenfin/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a transaction by id or unique id prefix",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	s, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	t, ok, err := deleteFrom(s, args[0])
	if err != nil || !ok {
		return err
	}
	fmt.Printf("  Deleted %s  %s  %s\n", cli.ShortID(t.ID), t.Description, cli.FormatSigned(t))
	return nil
}

// deleteFrom removes the transaction matching ref and persists the rest.
// An unknown ref is a no-op; an unreadable list is an error.
func deleteFrom(s transactionStore, ref string) (model.Transaction, bool, error) {
	txs, err := s.Load()
	if err != nil {
		return model.Transaction{}, false, err
	}
	t, ok := resolveID(txs, ref)
	if !ok {
		return model.Transaction{}, false, nil
	}

	txs = store.Remove(txs, t.ID)
	if err := s.Save(txs); err != nil {
		return model.Transaction{}, false, err
	}

	log.Info().Str("component", "cmd").Str("id", t.ID).Int("count", len(txs)).Msg("transaction deleted")
	return t, true, nil
}

// resolveID finds the transaction whose id equals ref, or failing that the
// single one whose id starts with ref. Ambiguous prefixes match nothing.
func resolveID(txs []model.Transaction, ref string) (model.Transaction, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Transaction{}, false
	}
	if t, ok := store.Find(txs, ref); ok {
		return t, true
	}

	var match model.Transaction
	n := 0
	for _, t := range txs {
		if strings.HasPrefix(t.ID, ref) {
			match = t
			n++
		}
	}
	return match, n == 1
}
