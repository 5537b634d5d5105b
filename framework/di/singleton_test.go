package di_test

import (
	"testing"

	"github.com/km-arc/sfx-di/framework/di"
)

func TestSingleton_ReturnsSameInstance(t *testing.T) {
	instance := &session{}
	d := di.Singleton(instance)

	for _, r := range []di.Resolver{nil, mapResolver{}, mapResolver{"a": 1}} {
		got, err := d(r, "ignored", 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != instance {
			t.Errorf("got %p, want %p", got, instance)
		}
	}
}

func TestSingleton_FalsyPayloads(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"zero", 0},
		{"empty string", ""},
		{"false", false},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := di.Singleton(tt.value)
			for i := 0; i < 3; i++ {
				got, err := d(nil)
				if err != nil || got != tt.value {
					t.Errorf("got (%#v, %v), want (%#v, nil)", got, err, tt.value)
				}
			}
		})
	}
}
