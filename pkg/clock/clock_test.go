package clock

import (
	"testing"
	"time"
)

func TestRemoteFallback(t *testing.T) {
	want := time.Unix(1000000000, 0)
	r := &Remote{Fallback: Fixed(want), now: func() time.Time { return time.Time{} }}
	if got := r.Now(); !got.Equal(want) {
		t.Fatalf("Now() = %v, want fallback %v", got, want)
	}
	remote := time.Unix(1700000000, 0)
	r.now = func() time.Time { return remote }
	if got := r.Now(); !got.Equal(remote) {
		t.Fatalf("Now() = %v, want remote %v", got, remote)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "system", "local", "remote"} {
		if c, ok := New(name); !ok || c == nil {
			t.Errorf("New(%q) failed", name)
		}
	}
	if _, ok := New("ntp"); ok {
		t.Error("New(ntp) succeeded")
	}
}
