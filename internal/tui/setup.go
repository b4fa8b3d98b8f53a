package tui

import (
	"strings"

	"github.com/theirongolddev/zenfin/internal/config"
	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// SetupValues is bound to the setup form fields.
type SetupValues struct {
	Theme    string
	Provider string
	APIKey   string
	Model    string
}

// NewSetupValues seeds the form values from the current configuration.
func NewSetupValues() *SetupValues {
	cfg, _ := config.Load()
	return &SetupValues{
		Theme:    cfg.Appearance.Theme,
		Provider: cfg.Advice.Provider,
		Model:    cfg.Advice.Model,
	}
}

// NewSetupForm builds the first-run form bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to zenfin").
				Description("Track income and expenses in rupees and get\npersonalized savings advice.\n\nA few settings first."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Advice provider").
				Description("Gemini and other OpenAI-compatible APIs, or a local Ollama server.").
				Options(
					huh.NewOption("Gemini / OpenAI-compatible", "openai"),
					huh.NewOption("Ollama (local)", "ollama"),
				).
				Value(&v.Provider),
			huh.NewInput().
				Title("API key").
				Description("Leave blank to use ZENFIN_API_KEY or GEMINI_API_KEY.").
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey),
			huh.NewInput().
				Title("Model").
				Placeholder("provider default").
				Value(&v.Model),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(true)
}

// ApplySetup writes the form values into cfg and activates the theme.
func ApplySetup(cfg *config.Config, v *SetupValues) {
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
		theme.SetActive(v.Theme)
	}
	if v.Provider != "" {
		cfg.Advice.Provider = v.Provider
	}
	if key := strings.TrimSpace(v.APIKey); key != "" {
		cfg.Advice.APIKey = key
	}
	cfg.Advice.Model = strings.TrimSpace(v.Model)
}

func (a *App) saveSetupConfig() {
	cfg, _ := config.Load()
	ApplySetup(&cfg, a.setupVals)

	if err := config.Save(cfg); err != nil {
		log.Error().Err(err).Str("component", "setup").Msg("saving config")
		a.note = "Could not save config; settings apply to this session only"
		a.noteWarn = true
	}

	if a.reconfigure != nil {
		a.adviser = a.reconfigure(cfg)
	}
}

func (a App) viewSetup() string {
	t := theme.Active
	form := a.setupForm.View()
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, form,
		lipgloss.WithWhitespaceBackground(t.Background))
}
