package prompt_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/km-arc/sfx-di/framework/prompt"
)

func TestSession_FinishSettles(t *testing.T) {
	s := prompt.NewSession()
	if s.Settled() {
		t.Fatal("a new session should be open")
	}

	s.Finish("http://localhost:19080")

	select {
	case <-s.Done():
	default:
		t.Fatal("Done() should be closed after Finish")
	}
	if v, ok := s.Result(); !ok || v != "http://localhost:19080" {
		t.Errorf("Result: got (%v, %v)", v, ok)
	}
}

func TestSession_CloseHasNoResult(t *testing.T) {
	s := prompt.NewSession()
	s.Close()

	if !s.Settled() {
		t.Error("Close should settle the session")
	}
	if v, ok := s.Result(); ok || v != nil {
		t.Errorf("Result after Close: got (%v, %v), want (nil, false)", v, ok)
	}
}

func TestSession_FirstSettlementWins(t *testing.T) {
	s := prompt.NewSession()
	s.Finish("first")
	s.Close()
	s.Finish("second")

	if v, ok := s.Result(); !ok || v != "first" {
		t.Errorf("Result: got (%v, %v), want (first, true)", v, ok)
	}
}

func TestSession_ID(t *testing.T) {
	a, b := prompt.NewSession(), prompt.NewSession()
	if _, err := uuid.Parse(a.ID()); err != nil {
		t.Errorf("ID %q is not a UUID: %v", a.ID(), err)
	}
	if a.ID() == b.ID() {
		t.Error("sessions should have distinct IDs")
	}
}

func TestSession_TryFinish(t *testing.T) {
	s := prompt.NewSession()
	if !s.TryFinish("first") {
		t.Fatal("TryFinish on an open session should win")
	}
	if s.TryFinish("second") {
		t.Error("TryFinish on a settled session should lose")
	}
	if v, _ := s.Result(); v != "first" {
		t.Errorf("Result: got %v", v)
	}
}
