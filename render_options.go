package rtf

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	ansi bool
}

// WithANSI enables ANSI styling of bold, italic, underline and
// strikethrough runs.
func WithANSI(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.ansi = enabled
	}
}
