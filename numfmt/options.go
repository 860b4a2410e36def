package numfmt

import "golang.org/x/text/language"

// ============================================================================
// SMART FORMATTER OPTIONS — Functional options for NewSmartFormatter()
// ============================================================================

// Option configures the smart formatter via functional options pattern.
type Option func(*smartConfig)

type smartConfig struct {
	ID          string
	Label       string
	Description string
	Signed      bool
	Locale      language.Tag // grouping/decimal symbols for byte tiers
}

// WithSigned prefixes positive values with "+".
func WithSigned() Option {
	return func(c *smartConfig) {
		c.Signed = true
	}
}

// WithID overrides the catalog identifier.
// Without it the id is SMART_NUMBER or SMART_NUMBER_SIGNED.
func WithID(id string) Option {
	return func(c *smartConfig) {
		c.ID = id
	}
}

// WithLabel sets the catalog label. An explicit empty label is kept.
func WithLabel(label string) Option {
	return func(c *smartConfig) {
		c.Label = label
	}
}

// WithDescription sets the catalog description.
func WithDescription(description string) Option {
	return func(c *smartConfig) {
		c.Description = description
	}
}

// WithLocale selects the locale used for digit grouping in byte tiers.
func WithLocale(tag language.Tag) Option {
	return func(c *smartConfig) {
		c.Locale = tag
	}
}

// applyOptions creates a smartConfig from functional options.
func applyOptions(opts []Option) *smartConfig {
	cfg := &smartConfig{
		Label:  DefaultSmartLabel,
		Locale: language.English,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ID == "" {
		cfg.ID = SmartNumber
		if cfg.Signed {
			cfg.ID = SmartNumberSigned
		}
	}
	return cfg
}
