package di

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// asConstructor turns any supported function shape into a Constructor.
// The common shapes are adapted directly; every other func goes through
// reflection and must return T or (T, error).
func asConstructor(v any) (Constructor, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, errors.WithStack(&ValidationError{
			Reason: fmt.Sprintf("constructor must be a function, got %T", v),
		})
	}
	if rv.IsNil() {
		return nil, errors.WithStack(&ValidationError{
			Reason: fmt.Sprintf("constructor must be a function, got nil %T", v),
		})
	}

	switch fn := v.(type) {
	case Constructor:
		return fn, nil
	case func(Args) (any, error):
		return fn, nil
	case func(Args) any:
		return func(args Args) (any, error) { return fn(args), nil }, nil
	case func(...any) any:
		return func(args Args) (any, error) { return fn(args...), nil }, nil
	}
	return reflectConstructor(rv)
}

func reflectConstructor(fn reflect.Value) (Constructor, error) {
	t := fn.Type()
	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return nil, errors.WithStack(&ValidationError{
			Reason: fmt.Sprintf("constructor %s must return a value, optionally followed by an error", t),
		})
	}

	return func(args Args) (any, error) {
		in, err := callArgs(t, args)
		if err != nil {
			return nil, err
		}
		out := fn.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}, nil
}

// callArgs maps args onto the parameters of t. Absent trailing arguments and
// nil placeholders become zero values.
func callArgs(t reflect.Type, args Args) ([]reflect.Value, error) {
	n := t.NumIn()
	fixed := n
	if t.IsVariadic() {
		fixed = n - 1
	} else if len(args) > n {
		return nil, errors.WithStack(&ArgumentError{
			Index:  n,
			Reason: fmt.Sprintf("%s takes %d arguments, got %d", t, n, len(args)),
		})
	}

	in := make([]reflect.Value, 0, max(n, len(args)))
	for i := 0; i < fixed; i++ {
		v, err := argValue(args.At(i), t.In(i), i)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	if t.IsVariadic() {
		elem := t.In(n - 1).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := argValue(args[i], elem, i)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func argValue(v any, want reflect.Type, i int) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(want), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(want) {
		return reflect.Value{}, errors.WithStack(&ArgumentError{
			Index:  i,
			Reason: fmt.Sprintf("cannot use %T as %s", v, want),
		})
	}
	return rv, nil
}
