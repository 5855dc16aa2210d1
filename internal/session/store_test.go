package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yt-insights/ytwatch/internal/models"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(ttl)
	st.now = clock.Now
	return st, clock
}

func TestGetCreatesAndReuses(t *testing.T) {
	st, _ := newTestStore(time.Hour)

	s1, created := st.Get("")
	if !created || s1.ID == "" {
		t.Fatalf("Get(\"\") = %v, created %v", s1, created)
	}
	s2, created := st.Get(s1.ID)
	if created || s2 != s1 {
		t.Error("Get should return the existing session")
	}
	s3, created := st.Get("unknown-id")
	if !created || s3.ID == "unknown-id" || s3 == s1 {
		t.Error("unknown ids must get a fresh session with a new id")
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}
}

func TestGetExpired(t *testing.T) {
	st, clock := newTestStore(time.Hour)
	s1, _ := st.Get("")

	clock.Advance(30 * time.Minute)
	if _, created := st.Get(s1.ID); created {
		t.Fatal("session expired too early")
	}

	clock.Advance(61 * time.Minute)
	s2, created := st.Get(s1.ID)
	if !created || s2.ID == s1.ID {
		t.Error("idle session should have expired")
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, expired session should be dropped", st.Len())
	}
}

func TestSweep(t *testing.T) {
	st, clock := newTestStore(time.Hour)
	idle, _ := st.Get("")
	busy, _ := st.Get("")
	busy.TryBeginSearch()

	clock.Advance(2 * time.Hour)
	active, _ := st.Get("")

	if n := st.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if _, created := st.Get(active.ID); created {
		t.Error("active session was swept")
	}
	st.mu.Lock()
	_, idleLeft := st.sessions[idle.ID]
	_, busyLeft := st.sessions[busy.ID]
	st.mu.Unlock()
	if idleLeft {
		t.Error("idle session survived the sweep")
	}
	if !busyLeft {
		t.Error("session with a search in flight was swept")
	}
}

func TestSearchGuard(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s, _ := st.Get("")

	if !s.TryBeginSearch() {
		t.Fatal("first search should start")
	}
	if s.TryBeginSearch() {
		t.Error("second search must be refused while one is in flight")
	}
	s.EndSearch()
	if !s.TryBeginSearch() {
		t.Error("search should start again once the first ended")
	}
}

func TestUpdateAndFresh(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s, _ := st.Get("")

	if !s.TakeFresh() {
		t.Error("new session should be fresh")
	}
	if s.TakeFresh() {
		t.Error("TakeFresh should report true only once")
	}

	s.Update(func(st models.State) models.State { return st.BeginSearch("jazz") })
	if got := s.State(); got.Query != "jazz" || got.Status != models.StatusLoading {
		t.Errorf("State() = %+v", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	st, clock := newTestStore(time.Millisecond)
	st.Get("")
	clock.Advance(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-swept:
		if n != 1 {
			t.Errorf("swept %d sessions, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
