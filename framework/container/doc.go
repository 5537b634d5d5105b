// Package container provides a Laravel-style IoC (Inversion of Control)
// container and Service Provider system built on di descriptors.
//
// # Overview
//
// The container maps string keys to di.Descriptor values and calls them on
// demand. Go cannot discover what a constructor depends on, so a binding is
// a constructor function plus the keys injected ahead of the caller's own
// arguments.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot(), after which everything resolves
//  4. Serve requests
//
// # Bindings
//
//	// Transient: new instance every Make()
//	c.Bind("client", NewClient, []string{"config"})
//
//	// Singleton: created on first Make(), reused afterwards
//	c.Singleton("cache", NewCache, []string{"config", ""})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Any descriptor
//	c.Register("clock", di.Singleton(clock.Real{}))
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw, err := c.Make("cache")
//	cache, err := container.Resolve[*Cache](c, "cache")
//
//	// Extra arguments follow the injected ones
//	client, err := c.Make("client", "http://localhost:19080")
//
// A key the container does not know fails with an error matching
// di.ErrNotFound; a binding whose inject is unknown fails with a
// *di.MissingDependencyError; a key that needs itself while being built
// fails with a *di.CircularDependencyError naming the chain.
//
// # Contextual Binding
//
//	c.When("prompt.connect-cluster").
//	    Needs("prompt.context").
//	    Give(di.Singleton(session))
//
// # Tags
//
//	c.Tag([]string{"cpu-report", "mem-report"}, "reports")
//	reports, err := c.Tagged("reports")  // []any
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Singleton("mailer", mail.NewSMTP, []string{"config"})
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
//	func (p *HeavyProvider) Register(app *container.Container) error {
//	    return app.Singleton("heavy", heavySetup, nil) // only on first Make("heavy")
//	}
package container
