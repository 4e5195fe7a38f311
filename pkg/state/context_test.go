package state

import (
	"errors"
	"testing"
)

func TestContextIdentifiers(t *testing.T) {
	c := New("app1", "v1", "int1", "alice", "sess1")
	if c.ApplicationID() != "app1" {
		t.Errorf("ApplicationID() = %q", c.ApplicationID())
	}
	if c.VersionID() != "v1" {
		t.Errorf("VersionID() = %q", c.VersionID())
	}
	if c.InteractionID() != "int1" {
		t.Errorf("InteractionID() = %q", c.InteractionID())
	}
	if c.User() != "alice" {
		t.Errorf("User() = %q", c.User())
	}
	if c.SessionID() != "sess1" {
		t.Errorf("SessionID() = %q", c.SessionID())
	}
}

func TestMemoizeRunsOnce(t *testing.T) {
	c := New("app1", "v1", "int1", "alice", "sess1")
	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return "result", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.Memoize("key", compute)
		if err != nil {
			t.Fatalf("Memoize() error = %v", err)
		}
		if got != "result" {
			t.Errorf("Memoize() = %v, want \"result\"", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestMemoizeCachesError(t *testing.T) {
	c := New("app1", "v1", "int1", "alice", "sess1")
	calls := 0
	wantErr := errors.New("boom")
	compute := func() (interface{}, error) {
		calls++
		return nil, wantErr
	}

	_, err1 := c.Memoize("key", compute)
	_, err2 := c.Memoize("key", compute)
	if err1 != wantErr || err2 != wantErr {
		t.Fatalf("Memoize() errors = %v, %v, want %v both times", err1, err2, wantErr)
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestMemoizeDistinctKeysIndependent(t *testing.T) {
	c := New("app1", "v1", "int1", "alice", "sess1")
	v1, _ := c.Memoize("a", func() (interface{}, error) { return 1, nil })
	v2, _ := c.Memoize("b", func() (interface{}, error) { return 2, nil })
	if v1 != 1 || v2 != 2 {
		t.Errorf("got %v, %v, want 1, 2", v1, v2)
	}
}

func TestMemoizeReentrantReturnsInFlight(t *testing.T) {
	c := New("app1", "v1", "int1", "alice", "sess1")
	var inner error
	_, outerErr := c.Memoize("key", func() (interface{}, error) {
		_, inner = c.Memoize("key", func() (interface{}, error) { return nil, nil })
		return "done", nil
	})
	if outerErr != nil {
		t.Fatalf("outer Memoize() error = %v", outerErr)
	}
	if !errors.Is(inner, ErrMemoizeInFlight) {
		t.Errorf("inner Memoize() error = %v, want ErrMemoizeInFlight", inner)
	}
}
