package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/theirongolddev/zenfin/internal/advice"
	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/config"
	"github.com/theirongolddev/zenfin/internal/logging"
	"github.com/theirongolddev/zenfin/internal/model"
	"github.com/theirongolddev/zenfin/internal/pipeline"
	"github.com/theirongolddev/zenfin/internal/store"
	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagDays      int
	flagVerbose   bool
	flagNoPersist bool
)

// cfg is the resolved configuration, loaded before any command runs.
var cfg = config.DefaultConfig()

var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:               "zenfin",
	Short:             "Personal finance tracker with savings advice",
	Long:              "Track income and expenses in rupees, see where the money goes, and get personalized savings tips.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (0 = all time)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Also log to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoPersist, "no-persist", false, "Keep transactions in memory only")
}

func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}

	closer, err := logging.Setup(logging.Options{
		Level:   cfg.Log.Level,
		File:    config.LogPath(cfg),
		Verbose: flagVerbose,
	})
	if err != nil {
		// Logging is best effort; keep going with whatever was installed.
		fmt.Fprintln(os.Stderr, cli.RenderWarn(fmt.Sprintf("  Log file unavailable: %v", err)))
	}
	logCloser = closer

	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

// transactionStore is the part of store.Transactions the commands use.
type transactionStore interface {
	Load() ([]model.Transaction, error)
	Save([]model.Transaction) error
}

// openStore opens the transaction store, in memory when --no-persist is set.
// The returned func releases the underlying database.
func openStore() (*store.Transactions, func(), error) {
	if flagNoPersist {
		return store.NewTransactions(store.NewMemory()), func() {}, nil
	}

	path := config.DBPath(cfg)
	db, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	log.Debug().Str("component", "cmd").Str("path", path).Msg("store opened")

	return store.NewTransactions(db), func() { _ = db.Close() }, nil
}

// loadTransactions reads the full list and returns it with the --days view.
func loadTransactions() (all, view []model.Transaction, err error) {
	s, closeFn, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	defer closeFn()

	all, err = s.Load()
	if err != nil {
		return nil, nil, err
	}
	return all, pipeline.FilterSince(all, since()), nil
}

// since returns the start of the --days window, or zero for all time.
func since() time.Time {
	if flagDays <= 0 {
		return time.Time{}
	}
	return time.Now().AddDate(0, 0, -flagDays)
}

func windowLabel() string {
	if flagDays <= 0 {
		return "All time"
	}
	return fmt.Sprintf("Last %dd", flagDays)
}

// newAdviser builds the advice client from c. A missing provider is not an
// error; the client then always returns the fallback insight.
func newAdviser(c config.Config) *advice.Client {
	p, err := advice.NewProvider(advice.Options{
		Provider: c.Advice.Provider,
		Model:    c.Advice.Model,
		BaseURL:  c.Advice.BaseURL,
		APIKey:   config.GetAPIKey(c),
		Timeout:  c.Advice.Timeout(),
	})
	if err != nil {
		log.Warn().Err(err).Str("component", "cmd").Str("provider", c.Advice.Provider).Msg("advice provider unavailable")
		return advice.NewClient(nil)
	}
	return advice.NewClient(p)
}
