package di

import "github.com/pkg/errors"

type lazyState int

const (
	uninitialized lazyState = iota
	building
	initialized
)

// lazy is the private cache behind a LazySingleton descriptor.
type lazy struct {
	state    lazyState
	build    Descriptor // dropped once the instance exists
	instance any
}

// LazySingleton returns a descriptor that builds its instance on the first
// resolution and returns that same instance from then on. Later calls
// ignore their resolver and extra arguments: the first call wins.
//
// Validation is the same as Dedication and happens here. If the first
// resolution fails or panics, nothing is cached and the next call tries
// again.
// A constructor that resolves the same lazy singleton while it is being
// built gets a CircularDependencyError.
//
// The cache is not guarded against concurrent first resolution; callers
// that resolve from several goroutines must serialize it (container.Make
// does).
func LazySingleton(ctor any, injects any) (Descriptor, error) {
	build, err := Dedication(ctor, injects)
	if err != nil {
		return nil, err
	}
	l := &lazy{build: build}
	return l.resolve, nil
}

func (l *lazy) resolve(r Resolver, extra ...any) (any, error) {
	switch l.state {
	case initialized:
		return l.instance, nil
	case building:
		return nil, errors.WithStack(&CircularDependencyError{})
	}

	l.state = building
	defer func() {
		// a failed or panicking build leaves nothing cached
		if l.state == building {
			l.state = uninitialized
		}
	}()

	instance, err := l.build(r, extra...)
	if err != nil {
		return nil, err
	}

	l.instance = instance
	l.build = nil
	l.state = initialized
	return instance, nil
}
