package container

import (
	"github.com/pkg/errors"

	"github.com/km-arc/sfx-di/framework/di"
)

// ContextualBuilder implements the fluent contextual binding API: when the
// concrete abstract is being built and asks for needs, use another
// descriptor instead of the global binding.
//
//	c.When("prompt.connect-cluster").Needs("prompt.context").Give(di.Singleton(session))
type ContextualBuilder struct {
	container *Container
	concrete  string
	needs     string
}

// When starts a contextual binding chain.
func (c *Container) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{container: c, concrete: concrete}
}

// Needs specifies which abstract the concrete type depends on.
func (b *ContextualBuilder) Needs(abstract string) *ContextualBuilder {
	b.needs = abstract
	return b
}

// Give provides the descriptor used when the concrete type resolves the
// specified abstract.
func (b *ContextualBuilder) Give(d di.Descriptor) error {
	if b.needs == "" {
		return errors.Errorf("container: contextual binding for [%s] has no Needs()", b.concrete)
	}
	if d == nil {
		return errors.Errorf("container: nil contextual descriptor for [%s] needs [%s]", b.concrete, b.needs)
	}

	b.container.mu.Lock()
	defer b.container.mu.Unlock()

	concrete := b.container.canonical(b.concrete)
	if _, ok := b.container.contextual[concrete]; !ok {
		b.container.contextual[concrete] = make(map[string]di.Descriptor)
	}
	b.container.contextual[concrete][b.needs] = d
	return nil
}

// GiveValue is a shorthand for Give(di.Singleton(value)).
//
//	c.When("prompt.connect-cluster").Needs("cluster.local-url").GiveValue("http://127.0.0.1:19080")
func (b *ContextualBuilder) GiveValue(value any) error {
	return b.Give(di.Singleton(value))
}

// getContextual returns the contextual descriptor for (concrete, abstract).
func (c *Container) getContextual(concrete, abstract string) (di.Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m, ok := c.contextual[concrete]; ok {
		if d, ok := m[abstract]; ok {
			return d, true
		}
	}
	return nil, false
}
