// Package advice asks a language model for financial advice about a
// transaction list and falls back to a fixed insight when that fails.
package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyResponse indicates the provider returned no content.
	ErrEmptyResponse = errors.New("advice: empty response")
	// ErrNoProvider indicates no provider is configured.
	ErrNoProvider = errors.New("advice: no provider configured")
)

// Provider turns a prompt into the raw JSON text of an insight.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source records where a Result's insight came from.
type Source int

const (
	SourceProvider Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "provider"
}

// Result is the outcome of one advice request. Err is set whenever the
// fallback insight was used.
type Result struct {
	Insight model.Insight
	Source  Source
	Err     error
}

// Fallback reports whether the result carries the fixed fallback insight.
func (r Result) Fallback() bool {
	return r.Source == SourceFallback
}

// Fallback returns a fresh copy of the insight used when generation fails.
func Fallback() model.Insight {
	return model.Insight{
		Summary: "I couldn't analyze your data right now. Keep tracking your expenses in Rupees to see patterns!",
		Tips: []string{
			"Review your monthly subscriptions",
			"Try the 50/30/20 rule",
			"Set a weekly spending limit",
		},
		HealthScore: 50,
	}
}

// Client requests insights from a Provider.
type Client struct {
	provider Provider
}

// NewClient returns a client over p. A nil p makes every request fall back.
func NewClient(p Provider) *Client {
	return &Client{provider: p}
}

// Advise makes exactly one provider call for txs. It never fails: on any
// error the result carries the fallback insight and the cause.
func (c *Client) Advise(ctx context.Context, txs []model.Transaction) Result {
	if c == nil || c.provider == nil {
		return fallback(ErrNoProvider, "none")
	}

	prompt, err := BuildPrompt(txs)
	if err != nil {
		return fallback(err, c.provider.Name())
	}

	text, err := c.provider.Generate(ctx, prompt)
	if err != nil {
		return fallback(err, c.provider.Name())
	}

	insight, err := decodeInsight(text)
	if err != nil {
		return fallback(err, c.provider.Name())
	}

	log.Debug().
		Str("component", "advice").
		Str("provider", c.provider.Name()).
		Int("count", len(txs)).
		Int("health_score", insight.HealthScore).
		Msg("insight generated")

	return Result{Insight: insight, Source: SourceProvider}
}

func fallback(err error, provider string) Result {
	log.Warn().
		Err(err).
		Str("component", "advice").
		Str("provider", provider).
		Bool("fallback", true).
		Msg("advice request failed")
	return Result{Insight: Fallback(), Source: SourceFallback, Err: err}
}

// rawInsight mirrors model.Insight; the score may arrive fractional.
type rawInsight struct {
	Summary     string   `json:"summary"`
	Tips        []string `json:"tips"`
	HealthScore float64  `json:"healthScore"`
}

func decodeInsight(text string) (model.Insight, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Insight{}, ErrEmptyResponse
	}

	var raw rawInsight
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return model.Insight{}, fmt.Errorf("advice: parsing insight: %w", err)
	}

	return model.Insight{
		Summary:     raw.Summary,
		Tips:        raw.Tips,
		HealthScore: int(math.Round(raw.HealthScore)),
	}, nil
}
