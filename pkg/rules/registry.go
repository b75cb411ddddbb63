package rules

import (
	"fmt"
	"sync"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

// Registry holds rule families in the order they run.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Family
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Family)}
}

// Register appends a family. Registering an existing ID replaces the
// family in place, keeping its position.
func (r *Registry) Register(f Family) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[f.ID()]; !ok {
		r.order = append(r.order, f.ID())
	}
	r.byID[f.ID()] = f
}

// Get returns the family with the given ID.
func (r *Registry) Get(id string) (Family, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byID[id]
	return f, ok
}

// Families returns every family in run order.
func (r *Registry) Families() []Family {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Family, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns every family ID in run order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Pipelines compiles every enabled family and returns one pipeline per
// language. A rule that fails to compile aborts the build so that no file is
// processed with a partial rule set.
func (r *Registry) Pipelines(cfg *config.Config) (*Pipelines, error) {
	for _, id := range append(append([]string(nil), cfg.Only...), cfg.Disable...) {
		if _, ok := r.Get(id); !ok {
			return nil, fmt.Errorf("%w: unknown rule family %q", rewrite.ErrRuleRegistration, id)
		}
	}

	type built struct {
		family Family
		pass   rewrite.Pass
	}
	var passes []built
	for _, f := range r.Families() {
		if !cfg.FamilyEnabled(f.ID()) {
			continue
		}
		pass, err := f.Build(cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", f.ID(), err)
		}
		passes = append(passes, built{family: f, pass: pass})
	}

	p := &Pipelines{byLang: make(map[langdetect.Language]*rewrite.Pipeline)}
	for _, lang := range langdetect.All() {
		var selected []rewrite.Pass
		for _, b := range passes {
			if AppliesTo(b.family, lang) {
				selected = append(selected, b.pass)
			}
		}
		p.byLang[lang] = rewrite.NewPipeline(selected...)
	}
	for _, b := range passes {
		p.enabled = append(p.enabled, b.family.ID())
	}
	return p, nil
}

// Pipelines maps each language to the pipeline that rewrites it.
type Pipelines struct {
	byLang  map[langdetect.Language]*rewrite.Pipeline
	enabled []string
}

// For returns the pipeline for lang, or nil if the language is unsupported.
func (p *Pipelines) For(lang langdetect.Language) *rewrite.Pipeline {
	return p.byLang[lang]
}

// Enabled returns the IDs of the families that were built, in run order.
func (p *Pipelines) Enabled() []string {
	return p.enabled
}

// DefaultRegistry holds the built-in families.
//
//nolint:gochecknoglobals // Global registry is intentional for family registration
var DefaultRegistry = NewRegistry()

// RegisterAll registers the built-in families with registry in run order.
func RegisterAll(registry *Registry) {
	registry.Register(NewImportsFamily())
	registry.Register(NewEmptyImportsFamily())
	registry.Register(NewReactImportFamily())
	registry.Register(NewCatchBindingFamily())
	registry.Register(NewUnusedIndexFamily())
	registry.Register(NewTypeWideningFamily())
}

//nolint:gochecknoinits // Built-in families register at startup.
func init() {
	RegisterAll(DefaultRegistry)
	config.DefaultFamilyInfoProvider = func() []config.FamilyInfo {
		families := DefaultRegistry.Families()
		infos := make([]config.FamilyInfo, 0, len(families))
		for _, f := range families {
			infos = append(infos, Info(f))
		}
		return infos
	}
}
