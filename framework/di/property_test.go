package di_test

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/km-arc/sfx-di/framework/di"
)

var injectKeys = []string{"", "a", "b", "config", "logger"}

func drawInjects(rt *rapid.T) []string {
	return rapid.SliceOfN(rapid.SampledFrom(injectKeys), 0, 6).Draw(rt, "injects")
}

func drawExtras(rt *rapid.T) []any {
	ints := rapid.SliceOfN(rapid.IntRange(-100, 100), 0, 5).Draw(rt, "extras")
	out := make([]any, len(ints))
	for i, n := range ints {
		out[i] = n
	}
	return out
}

// fullResolver binds every named key to "<key>!".
var fullResolver = di.ResolverFunc(func(key string) (any, error) {
	return key + "!", nil
})

func TestProperty_DedicationArgumentOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		injects := drawInjects(rt)
		extras := drawExtras(rt)

		d, err := di.Dedication(recordArgs, injects)
		if err != nil {
			rt.Fatalf("Dedication: %v", err)
		}
		got, err := d(fullResolver, extras...)
		if err != nil {
			rt.Fatalf("resolve: %v", err)
		}

		want := make([]any, 0, len(injects)+len(extras))
		for _, key := range injects {
			if key == "" {
				want = append(want, nil)
			} else {
				want = append(want, key+"!")
			}
		}
		want = append(want, extras...)

		if !reflect.DeepEqual(got, want) {
			rt.Fatalf("args: got %#v, want %#v", got, want)
		}
	})
}

func TestProperty_SingletonIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.OneOf(
			rapid.Int().AsAny(),
			rapid.String().AsAny(),
			rapid.Bool().AsAny(),
		).Draw(rt, "value")
		extras := drawExtras(rt)

		d := di.Singleton(value)
		got, err := d(fullResolver, extras...)
		if err != nil || got != value {
			rt.Fatalf("got (%#v, %v), want %#v", got, err, value)
		}
	})
}

func TestProperty_LazySingletonConstructsOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		injects := drawInjects(rt)
		resolutions := rapid.IntRange(1, 20).Draw(rt, "resolutions")

		ctor, calls := countingCtor()
		d, err := di.LazySingleton(ctor, injects)
		if err != nil {
			rt.Fatalf("LazySingleton: %v", err)
		}

		first, err := d(fullResolver, drawExtras(rt)...)
		if err != nil {
			rt.Fatalf("first resolution: %v", err)
		}
		for i := 1; i < resolutions; i++ {
			got, err := d(fullResolver, drawExtras(rt)...)
			if err != nil || got != first {
				rt.Fatalf("resolution %d: got (%v, %v), want cached instance", i, got, err)
			}
		}
		if *calls != 1 {
			rt.Fatalf("constructor calls: got %d, want 1", *calls)
		}
	})
}
