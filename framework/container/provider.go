package container

import (
	"github.com/pkg/errors"

	"github.com/km-arc/sfx-di/framework/di"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the bindings of one part of the application.
//
// Register() is called when the provider is added (or, for deferred
// providers, on first use of one of its keys). Boot() is called after ALL
// eager providers have been registered, making it safe to resolve other
// bindings inside Boot().
//
//	type PromptServiceProvider struct{ container.BaseProvider }
//
//	func (p *PromptServiceProvider) Register(app *container.Container) error {
//	    return app.Singleton("prompt.context", prompt.NewSession, nil)
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here; use Boot() for that.
	Register(app *Container) error

	// Boot is called after all providers are registered.
	Boot(app *Container) error

	// Provides returns the abstract keys this provider registers.
	// Only consulted for deferred providers.
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily,
	// only when one of its Provides() abstracts is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) error { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
// Registering the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
		}
		return r.interceptDeferred(provider)
	}

	if err := provider.Register(r.app); err != nil {
		return errors.Wrapf(err, "register provider %T", provider)
	}
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		if err := provider.Boot(r.app); err != nil {
			return errors.Wrapf(err, "boot provider %T", provider)
		}
	}
	return nil
}

// interceptDeferred registers a placeholder descriptor for each deferred
// abstract. The first resolution registers the provider for real and then
// runs the descriptor it installed, within the same resolution.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) error {
	for _, abstract := range provider.Provides() {
		if err := r.placeholder(provider, abstract); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProviderRegistry) placeholder(provider ServiceProvider, abs string) error {
	return r.app.Register(abs, func(res di.Resolver, extra ...any) (any, error) {
		if err := r.loadDeferred(provider); err != nil {
			return nil, err
		}
		_, d, ok := r.app.descriptor(abs)
		if !ok {
			return nil, errors.Wrapf(di.ErrNotFound, "deferred provider %T did not register [%s]", provider, abs)
		}
		return d(res, extra...)
	})
}

// loadDeferred swaps the placeholders of provider for its real bindings.
// If Register fails the placeholders are put back, so the next resolution
// tries again.
func (r *ProviderRegistry) loadDeferred(provider ServiceProvider) error {
	var pending []string
	for _, abs := range provider.Provides() {
		if r.deferred[abs] == provider {
			pending = append(pending, abs)
			delete(r.deferred, abs)
			r.app.Forget(abs)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if err := provider.Register(r.app); err != nil {
		for _, abs := range pending {
			r.deferred[abs] = provider
			if perr := r.placeholder(provider, abs); perr != nil {
				return perr
			}
		}
		return errors.Wrapf(err, "register deferred provider %T", provider)
	}
	if r.booted {
		return errors.Wrapf(provider.Boot(r.app), "boot deferred provider %T", provider)
	}
	return nil
}

// Boot calls Boot() on all eager providers, in registration order.
// The first failure stops the boot and is returned.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.app); err != nil {
			return errors.Wrapf(err, "boot provider %T", provider)
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }

// Deferred returns the abstracts whose providers have not been loaded yet.
func (r *ProviderRegistry) Deferred() []string {
	out := make([]string, 0, len(r.deferred))
	for abs := range r.deferred {
		out = append(out, abs)
	}
	return out
}
