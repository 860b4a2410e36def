package numfmt

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
)

// ============================================================================
// REGISTRY — Formatter catalog keyed by id
// ============================================================================

var (
	// ErrUnknownFormatter is returned when an id is not registered.
	ErrUnknownFormatter = errors.New("unknown number formatter")
	// ErrInvalidFormatter is returned when registering a nil or anonymous formatter.
	ErrInvalidFormatter = errors.New("invalid number formatter")
)

// Registry holds formatters by id. Lookups of unknown ids resolve to the
// default formatter. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]*Formatter
	defaultID  string
}

// NewRegistry returns a registry holding the unsigned and signed smart
// formatters, with SMART_NUMBER as default. opts apply to both; WithID is
// ignored.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		formatters: make(map[string]*Formatter),
		defaultID:  SmartNumber,
	}
	// Built-ins always carry their catalog key as ID.
	unsigned := append(slices.Clone(opts), WithID(SmartNumber))
	signed := append(slices.Clone(opts), WithSigned(), WithID(SmartNumberSigned))
	r.formatters[SmartNumber] = NewSmartFormatter(unsigned...)
	r.formatters[SmartNumberSigned] = NewSmartFormatter(signed...)
	return r
}

// Register adds f under f.ID, replacing any formatter with the same id.
func (r *Registry) Register(f *Formatter) error {
	if f == nil || f.ID == "" {
		return ErrInvalidFormatter
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.formatters[f.ID]; ok {
		slog.Debug("number formatter replaced", "id", f.ID)
	}
	r.formatters[f.ID] = f
	return nil
}

// Get returns the formatter for id, or the default formatter when id is
// empty or unknown.
func (r *Registry) Get(id string) *Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.formatters[id]; ok {
		return f
	}
	return r.formatters[r.defaultID]
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.formatters[id]
	return ok
}

// Keys returns the registered ids in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.formatters))
	for k := range r.formatters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultID returns the id used for unknown lookups.
func (r *Registry) DefaultID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultID
}

// SetDefault changes the fallback formatter.
func (r *Registry) SetDefault(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.formatters[id]; !ok {
		return fmt.Errorf("set default %q: %w", id, ErrUnknownFormatter)
	}
	r.defaultID = id
	return nil
}

// Format renders value with the formatter registered under id.
func (r *Registry) Format(id string, value float64) string {
	return r.Get(id).Format(value)
}
