package advice

import (
	"fmt"
	"time"
)

// Options selects and configures a provider.
type Options struct {
	Provider string // "openai" or "ollama"
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewProvider builds the provider named in opts. An openai provider without
// an API key yields ErrNoProvider.
func NewProvider(opts Options) (Provider, error) {
	switch opts.Provider {
	case "", "openai":
		if opts.APIKey == "" {
			return nil, ErrNoProvider
		}
		return NewOpenAI(opts.APIKey, opts.BaseURL, opts.Model, opts.Timeout), nil
	case "ollama":
		return NewOllama(opts.BaseURL, opts.Model, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("advice: unknown provider %q", opts.Provider)
	}
}
