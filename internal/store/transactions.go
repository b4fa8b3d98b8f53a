package store

import (
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/rs/zerolog/log"
)

// StorageKey namespaces the persisted transaction list.
const StorageKey = "zenfinance_transactions"

// Transactions persists the full transaction list as one JSON array.
type Transactions struct {
	kv KV
}

// NewTransactions returns a transaction store over kv.
func NewTransactions(kv KV) *Transactions {
	return &Transactions{kv: kv}
}

// Load returns the persisted list, newest first. Missing or malformed data
// yields an empty list; a failed read is an error and must not be followed
// by a Save of the empty result.
func (s *Transactions) Load() ([]model.Transaction, error) {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	if !ok || raw == "" {
		return []model.Transaction{}, nil
	}

	var txs []model.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Msg("discarding malformed transactions")
		return []model.Transaction{}, nil
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	return txs, nil
}

// Save overwrites the persisted list with txs.
func (s *Transactions) Save(txs []model.Transaction) error {
	if txs == nil {
		txs = []model.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	return nil
}

// Append returns a new list with t at the front. txs is not modified.
func Append(txs []model.Transaction, t model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs)+1)
	out = append(out, t)
	return append(out, txs...)
}

// Remove returns a new list without the transaction with the given id.
func Remove(txs []model.Transaction, id string) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the transaction with the given id.
func Find(txs []model.Transaction, id string) (model.Transaction, bool) {
	for _, t := range txs {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}
