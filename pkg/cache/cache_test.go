package cache

import (
	"sync"
	"testing"
)

func TestReadAbsentKey(t *testing.T) {
	s := New()

	if v, ok := s.Read("posts"); ok || v != nil {
		t.Errorf("Read of absent key = (%v, %v), want (nil, false)", v, ok)
	}
}

func TestWriteReceivesNilForAbsentKey(t *testing.T) {
	s := New()

	s.Write("posts", func(prior interface{}) interface{} {
		if prior != nil {
			t.Errorf("Updater prior = %v, want nil", prior)
		}
		return []string{"p1"}
	})

	v, ok := s.Read("posts")
	if !ok {
		t.Fatal("Key should exist after Write")
	}
	if list := v.([]string); len(list) != 1 || list[0] != "p1" {
		t.Errorf("Read = %v, want [p1]", list)
	}
}

func TestWriteSeesPriorValue(t *testing.T) {
	s := New()
	s.Set("counter", 1)

	s.Write("counter", func(prior interface{}) interface{} {
		return prior.(int) + 1
	})

	v, _ := s.Read("counter")
	if v.(int) != 2 {
		t.Errorf("counter = %v, want 2", v)
	}
}

func TestInvalidateExactKey(t *testing.T) {
	s := New()
	s.Set("posts", []string{})
	s.Set("postsByUser:u1", []string{})

	s.Invalidate("posts")

	if !s.Stale("posts") {
		t.Error("posts should be stale")
	}
	if s.Stale("postsByUser:u1") {
		t.Error("postsByUser:u1 should not be stale, it is not nested under posts")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	s := New()
	s.Set("postsByUser:u1", []string{})
	s.Set("postsByUser:u2", []string{})
	s.Set("post:p1", "x")

	s.Invalidate("postsByUser")

	if !s.Stale("postsByUser:u1") || !s.Stale("postsByUser:u2") {
		t.Error("Per-user lists should be stale")
	}
	if s.Stale("post:p1") {
		t.Error("post:p1 should not be stale")
	}
}

func TestWriteClearsStale(t *testing.T) {
	s := New()
	s.Set("posts", []string{})
	s.Invalidate("posts")

	s.Set("posts", []string{"fresh"})

	if s.Stale("posts") {
		t.Error("Write should clear the stale mark")
	}
}

func TestStaleEntriesStillReadable(t *testing.T) {
	s := New()
	s.Set("posts", "cached")
	s.Invalidate("posts")

	v, ok := s.Read("posts")
	if !ok || v != "cached" {
		t.Errorf("Read of stale key = (%v, %v), want (cached, true)", v, ok)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	s.Set("posts", "x")

	s.Delete("posts")

	if _, ok := s.Read("posts"); ok {
		t.Error("Key should be absent after Delete")
	}
}

func TestConcurrentWrites(t *testing.T) {
	s := New()
	s.Set("counter", 0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Write("counter", func(prior interface{}) interface{} {
				return prior.(int) + 1
			})
		}()
	}
	wg.Wait()

	v, _ := s.Read("counter")
	if v.(int) != 100 {
		t.Errorf("counter = %v, want 100 (lost updates)", v)
	}
}
