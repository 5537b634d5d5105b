package container

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/sfx-di/framework/di"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container. Every binding is a di.Descriptor keyed by
// a string; the container only stores them and hands itself (through a
// resolution scope) to each descriptor it calls.
//
// It supports:
//   - Register / Bind / Singleton / Instance / Alias
//   - Make / Resolve (generic)
//   - Extend (decorate resolved instances)
//   - Tags (group multiple abstractions under one tag)
//   - Contextual binding (when A needs B, give it C)
//   - Rebinding and after-resolving callbacks
//
// Registration is safe from any goroutine. Make serializes resolutions so a
// lazy singleton is never materialized twice.
type Container struct {
	mu sync.RWMutex

	// held for the duration of a top-level Make
	resolveMu sync.Mutex

	// abstract → descriptor
	bindings map[string]di.Descriptor

	// alias → abstract (canonical key)
	aliases map[string]string

	// tag → []abstract
	tags map[string][]string

	// contextual: when[concrete][abstract] = descriptor
	contextual map[string]map[string]di.Descriptor

	// abstracts resolved at least once since they were bound
	resolved map[string]bool

	// abstract → callbacks fired when a resolved binding is replaced
	rebound map[string][]func(any)

	// resolved callbacks: []func(abstract, instance)
	afterResolving []func(string, any)

	log log.FieldLogger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registration and resolution events.
func WithLogger(l log.FieldLogger) Option {
	return func(c *Container) { c.log = l }
}

// New creates an empty container with "container" bound to itself.
func New(opts ...Option) *Container {
	c := &Container{
		bindings:   make(map[string]di.Descriptor),
		aliases:    make(map[string]string),
		tags:       make(map[string][]string),
		contextual: make(map[string]map[string]di.Descriptor),
		resolved:   make(map[string]bool),
		rebound:    make(map[string][]func(any)),
		log:        log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	_ = c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores a descriptor under abstract, replacing any previous one.
// Replacing a binding that was already resolved fires its Rebinding
// callbacks with a freshly made instance.
//
//	c.Register("clock", di.Singleton(time.Now))
func (c *Container) Register(abstract string, d di.Descriptor) error {
	if abstract == "" {
		return errors.New("container: abstract key must not be empty")
	}
	if d == nil {
		return errors.Errorf("container: nil descriptor for [%s]", abstract)
	}

	c.mu.Lock()
	key := c.canonical(abstract)
	_, replaced := c.bindings[key]
	c.bindings[key] = d
	rebind := replaced && c.resolved[key]
	delete(c.resolved, key)
	c.mu.Unlock()

	c.log.WithFields(log.Fields{
		"key":      key,
		"replaced": replaced,
	}).Debug("Registered binding")

	if rebind {
		c.fireRebound(key)
	}
	return nil
}

// Bind registers a transient binding: a new instance on every Make.
//
//	c.Bind("client", NewClusterClient, []string{"config", "logger"})
func (c *Container) Bind(abstract string, ctor any, injects any) error {
	d, err := di.Dedication(ctor, injects)
	if err != nil {
		return errors.Wrapf(err, "container: bind [%s]", abstract)
	}
	return c.Register(abstract, d)
}

// Singleton registers a binding built on first Make and cached afterwards.
//
//	c.Singleton("cache", NewCache, []string{"config"})
func (c *Container) Singleton(abstract string, ctor any, injects any) error {
	d, err := di.LazySingleton(ctor, injects)
	if err != nil {
		return errors.Wrapf(err, "container: singleton [%s]", abstract)
	}
	return c.Register(abstract, d)
}

// Instance registers a pre-built value.
//
//	c.Instance("config", cfg)
func (c *Container) Instance(abstract string, instance any) error {
	return c.Register(abstract, di.Singleton(instance))
}

// Alias registers an alternative name for an abstract.
//
//	c.Alias("config", "configuration")
func (c *Container) Alias(abstract, alias string) error {
	if abstract == alias {
		return errors.Errorf("container: [%s] is aliased to itself", abstract)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
	return nil
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extender decorates an instance produced by a binding. r resolves other
// bindings within the same resolution.
type Extender func(instance any, r di.Resolver) (any, error)

// Extend wraps the current binding of abstract so every instance it yields
// passes through fn. A singleton whose instance is a pointer, map or channel
// is decorated once and keeps its identity; other values are decorated on
// each Make. Registering abstract again drops its extenders.
//
//	c.Extend("logger", func(instance any, _ di.Resolver) (any, error) {
//	    return instance.(*log.Logger).WithField("component", "prompt"), nil
//	})
//
// Extending an already resolved binding fires its Rebinding callbacks.
func (c *Container) Extend(abstract string, fn Extender) error {
	if fn == nil {
		return errors.Errorf("container: nil extender for [%s]", abstract)
	}

	c.mu.Lock()
	key := c.canonical(abstract)
	d, ok := c.bindings[key]
	if !ok {
		c.mu.Unlock()
		return errors.Wrapf(di.ErrNotFound, "container: extend [%s]", abstract)
	}
	c.bindings[key] = extended(key, d, fn)
	rebind := c.resolved[key]
	delete(c.resolved, key)
	c.mu.Unlock()

	if rebind {
		c.fireRebound(key)
	}
	return nil
}

func extended(key string, d di.Descriptor, fn Extender) di.Descriptor {
	var last, decorated any
	return func(r di.Resolver, extra ...any) (any, error) {
		instance, err := d(r, extra...)
		if err != nil {
			return nil, err
		}
		if sameInstance(instance, last) {
			return decorated, nil
		}
		out, err := fn(instance, r)
		if err != nil {
			return nil, errors.Wrapf(err, "container: extend [%s]", key)
		}
		last, decorated = instance, out
		return out, nil
	}
}

// sameInstance reports whether a and b are the same reference value.
func sameInstance(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates multiple abstracts under a named group.
//
//	c.Tag([]string{"cpu-report", "memory-report"}, "reports")
func (c *Container) Tag(abstracts []string, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], abstracts...)
}

// Tagged resolves all abstracts registered under a tag, in tag order.
func (c *Container) Tagged(tag string) ([]any, error) {
	c.mu.RLock()
	abstracts := append([]string(nil), c.tags[tag]...)
	c.mu.RUnlock()

	result := make([]any, 0, len(abstracts))
	for _, abs := range abstracts {
		instance, err := c.Make(abs)
		if err != nil {
			return nil, errors.Wrapf(err, "container: tag [%s]", tag)
		}
		result = append(result, instance)
	}
	return result, nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract, passing extra to its descriptor after any
// injected arguments.
//
//	client, err := c.Make("client", "http://localhost:19080")
//
// Make holds the resolution lock while descriptors run. A constructor that
// needs more bindings must use the resolver it was handed (or its injects),
// never call Make on the container again. AfterResolving callbacks run once
// the lock is released and may call Make.
func (c *Container) Make(abstract string, extra ...any) (any, error) {
	s := &scope{c: c}
	instance, err := s.resolveLocked(abstract, extra)
	for _, r := range s.resolutions {
		c.fireAfterResolving(r.key, r.instance)
	}
	return instance, err
}

// Resolve implements di.Resolver. It is Make without extra arguments.
func (c *Container) Resolve(abstract string) (any, error) {
	return c.Make(abstract)
}

// descriptor returns the binding for abstract, following aliases.
func (c *Container) descriptor(abstract string) (string, di.Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	d, ok := c.bindings[key]
	return key, d, ok
}

// scope is one top-level resolution. Descriptors see it as their
// di.Resolver, so nested lookups skip the resolution lock and share the
// build stack.
type scope struct {
	c *Container

	// abstracts currently being built, outermost first
	buildStack []string

	// successful resolutions, innermost first
	resolutions []resolution
}

type resolution struct {
	key      string
	instance any
}

func (s *scope) resolveLocked(abstract string, extra []any) (any, error) {
	s.c.resolveMu.Lock()
	defer s.c.resolveMu.Unlock()
	return s.make(abstract, extra)
}

func (s *scope) Resolve(abstract string) (any, error) {
	return s.make(abstract, nil)
}

func (s *scope) make(abstract string, extra []any) (any, error) {
	key, d, ok := s.c.descriptor(abstract)

	// A contextual binding for the caller wins over the global one.
	if n := len(s.buildStack); n > 0 {
		if cd, found := s.c.getContextual(s.buildStack[n-1], abstract); found {
			d, ok = cd, true
		}
	}
	if !ok {
		return nil, errors.Wrapf(di.ErrNotFound, "container: no binding registered for [%s]", abstract)
	}

	for _, building := range s.buildStack {
		if building == key {
			chain := append(append([]string(nil), s.buildStack...), key)
			return nil, errors.WithStack(&di.CircularDependencyError{Chain: chain})
		}
	}

	s.buildStack = append(s.buildStack, key)
	instance, err := d(s, extra...)
	s.buildStack = s.buildStack[:len(s.buildStack)-1]

	if err != nil {
		s.c.log.WithFields(log.Fields{
			"key":   key,
			"depth": len(s.buildStack),
			"error": err,
		}).Debug("Resolution failed")
		return nil, err
	}

	s.c.mu.Lock()
	s.c.resolved[key] = true
	s.c.mu.Unlock()
	s.resolutions = append(s.resolutions, resolution{key: key, instance: instance})
	return instance, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	_, _, ok := c.descriptor(abstract)
	return ok
}

// Resolved returns true if the abstract has been resolved at least once
// since it was bound.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolved[c.canonical(abstract)]
}

// Forget removes the binding for an abstract.
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.resolved, key)
}

// Flush resets the entire container, including its self binding.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]di.Descriptor)
	c.aliases = make(map[string]string)
	c.tags = make(map[string][]string)
	c.contextual = make(map[string]map[string]di.Descriptor)
	c.resolved = make(map[string]bool)
	c.rebound = make(map[string][]func(any))
}

// Bindings returns the registered abstract keys in sorted order.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias to its canonical key (caller holds mu).
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// Rebinding registers a callback fired when a resolved abstract is bound
// again (Register, Bind, Singleton, Instance or Extend). The callback gets
// the instance made from the new binding.
//
// The new instance is made with Make, so rebinding a resolved abstract from
// inside a constructor deadlocks once a callback is registered for it.
func (c *Container) Rebinding(abstract string, cb func(instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	c.rebound[key] = append(c.rebound[key], cb)
}

func (c *Container) fireRebound(key string) {
	c.mu.RLock()
	cbs := c.rebound[key]
	c.mu.RUnlock()
	if len(cbs) == 0 {
		return
	}

	instance, err := c.Make(key)
	if err != nil {
		c.log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Debug("Rebinding skipped")
		return
	}
	for _, cb := range cbs {
		cb(instance)
	}
}

// AfterResolving registers a callback fired after any abstract is resolved,
// nested resolutions included, innermost first. Callbacks run after Make has
// released the resolution lock.
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(abstract string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// abstract key when working with interfaces. Unnamed types use their type
// literal. TypeKey(nil) is "", which Register rejects.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
//	c.Singleton(key, NewUserRepository, nil)
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve resolves abstract through r and type-asserts the result.
//
//	cfg, err := container.Resolve[*config.Config](c, "config")
func Resolve[T any](r di.Resolver, abstract string) (T, error) {
	var zero T
	instance, err := r.Resolve(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errors.Errorf("container: Resolve[%T]: [%s] resolved to %T", zero, abstract, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on any error. Use it only where a
// missing binding is a bootstrap bug.
func MustResolve[T any](r di.Resolver, abstract string) T {
	typed, err := Resolve[T](r, abstract)
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return typed
}

// IsNotFound reports whether err is the container's "no binding" error.
func IsNotFound(err error) bool {
	return stderrors.Is(err, di.ErrNotFound)
}
