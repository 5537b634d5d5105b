package di

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Dedication returns a descriptor that builds a new instance on every
// resolution. Each named inject is resolved through the container, each
// placeholder contributes nil, and the extra arguments follow in call order.
//
// ctor and injects are validated here; a bad binding never reaches a
// container.
//
//	d, err := di.Dedication(NewClusterClient, []string{"config", "", "logger"})
//	client, err := d(c, "http://localhost:19080")
//	// NewClusterClient(config, nil, logger, "http://localhost:19080")
func Dedication(ctor any, injects any) (Descriptor, error) {
	construct, err := asConstructor(ctor)
	if err != nil {
		return nil, err
	}
	spec, err := ParseInjects(injects)
	if err != nil {
		return nil, err
	}

	return func(r Resolver, extra ...any) (any, error) {
		args := make(Args, 0, len(spec)+len(extra))

		for _, key := range spec {
			if key == "" {
				args = append(args, nil)
				continue
			}
			v, err := resolveInject(r, key)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		args = append(args, extra...)

		return construct(args)
	}, nil
}

func resolveInject(r Resolver, key string) (any, error) {
	if r == nil {
		return nil, errors.WithStack(&MissingDependencyError{Key: key})
	}
	v, err := r.Resolve(key)
	switch {
	case err == nil:
		return v, nil
	case stderrors.Is(err, ErrNotFound):
		return nil, errors.WithStack(&MissingDependencyError{Key: key})
	default:
		return nil, errors.Wrapf(err, "resolve inject %q", key)
	}
}
