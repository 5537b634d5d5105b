package di

import (
	"fmt"

	"github.com/pkg/errors"
)

// Resolver is the only thing a descriptor needs from a container: a lookup
// by key. A missing key is reported with an error matching ErrNotFound.
type Resolver interface {
	Resolve(key string) (any, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(key string) (any, error)

func (f ResolverFunc) Resolve(key string) (any, error) { return f(key) }

// Descriptor produces an instance for a container. extra holds the caller's
// runtime arguments, appended after any injected ones.
type Descriptor func(r Resolver, extra ...any) (any, error)

// Constructor builds an instance from an ordered argument list.
type Constructor func(args Args) (any, error)

// Args is the ordered argument list handed to a Constructor: injected values
// (nil for placeholders) followed by extra runtime arguments.
type Args []any

// Len returns the number of arguments.
func (a Args) Len() int { return len(a) }

// At returns the i-th argument, or nil when i is out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Arg returns the i-th argument as T. A nil or absent argument yields the
// zero value of T without error, matching a placeholder slot.
//
//	db, err := di.Arg[*sql.DB](args, 0)
func Arg[T any](args Args, i int) (T, error) {
	var zero T
	v := args.At(i)
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.WithStack(&ArgumentError{
			Index:  i,
			Reason: fmt.Sprintf("got %T, want %T", v, zero),
		})
	}
	return typed, nil
}

// Must panics if err is non-nil. Use it for registration tables that are
// built at init time, where a bad binding is a programming error.
//
//	var repo = di.Must(di.Dedication(NewRepo, []string{"db"}))
func Must(d Descriptor, err error) Descriptor {
	if err != nil {
		panic(err)
	}
	return d
}
