package optimistic

import (
	"errors"
	"reflect"
	"testing"

	"github.com/redvista/social-cli/pkg/cache"
)

func TestRunAppliesSpeculativelyBeforeAction(t *testing.T) {
	store := cache.New()
	store.Set("k", 1)
	engine := NewEngine(store)

	var seenDuringAction interface{}
	err := engine.Run(Mutation{
		Name: "bump",
		Keys: []string{"k"},
		Apply: func(key string, prior interface{}) interface{} {
			return prior.(int) + 1
		},
		Action: func() (interface{}, error) {
			seenDuringAction, _ = store.Read("k")
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if seenDuringAction != 2 {
		t.Errorf("Value during action = %v, want 2 (apply must precede the remote call)", seenDuringAction)
	}
}

func TestRunRollsBackEveryKeyOnFailure(t *testing.T) {
	store := cache.New()
	store.Set("present", "original")
	// "absent" intentionally not seeded
	engine := NewEngine(store)

	err := engine.Run(Mutation{
		Name: "doomed",
		Keys: []string{"present", "absent"},
		Apply: func(key string, prior interface{}) interface{} {
			return "speculative"
		},
		Action: func() (interface{}, error) {
			return nil, errors.New("server said no")
		},
	})
	if err == nil {
		t.Fatal("Run should surface the action error")
	}

	v, ok := store.Read("present")
	if !ok || v != "original" {
		t.Errorf("present = (%v, %v), want (original, true)", v, ok)
	}
	if _, ok := store.Read("absent"); ok {
		t.Error("Key absent at capture time must be absent again after rollback")
	}
}

func TestRunRollbackRestoresDeepValue(t *testing.T) {
	store := cache.New()
	original := []string{"a", "b", "c"}
	store.Set("list", original)
	engine := NewEngine(store)

	_ = engine.Run(Mutation{
		Name: "doomed",
		Keys: []string{"list"},
		Apply: func(key string, prior interface{}) interface{} {
			return []string{"mutated"}
		},
		Action: func() (interface{}, error) {
			return nil, errors.New("nope")
		},
	})

	v, _ := store.Read("list")
	if !reflect.DeepEqual(v, original) {
		t.Errorf("list = %v, want %v restored verbatim", v, original)
	}
}

func TestRunInvalidatesOnSuccess(t *testing.T) {
	store := cache.New()
	store.Set("k", 1)
	engine := NewEngine(store)

	err := engine.Run(Mutation{
		Name:   "ok",
		Keys:   []string{"k"},
		Apply:  func(key string, prior interface{}) interface{} { return 2 },
		Action: func() (interface{}, error) { return nil, nil },
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !store.Stale("k") {
		t.Error("Touched key should be stale after a successful settle")
	}
}

func TestRunInvalidatesOnFailure(t *testing.T) {
	store := cache.New()
	store.Set("k", 1)
	engine := NewEngine(store)

	_ = engine.Run(Mutation{
		Name:   "doomed",
		Keys:   []string{"k"},
		Apply:  func(key string, prior interface{}) interface{} { return 2 },
		Action: func() (interface{}, error) { return nil, errors.New("nope") },
	})

	if !store.Stale("k") {
		t.Error("Touched key should be stale after a failed settle")
	}
}

func TestRunReconcileReceivesServerResponse(t *testing.T) {
	store := cache.New()
	engine := NewEngine(store)

	err := engine.Run(Mutation{
		Name:   "reconcile",
		Keys:   []string{"k"},
		Apply:  func(key string, prior interface{}) interface{} { return "speculative" },
		Action: func() (interface{}, error) { return "authoritative", nil },
		Reconcile: func(s *cache.Store, response interface{}) {
			s.Set("k", response)
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	v, _ := store.Read("k")
	if v != "authoritative" {
		t.Errorf("k = %v, want authoritative", v)
	}
}

func TestRunErrorNamesAction(t *testing.T) {
	store := cache.New()
	engine := NewEngine(store)

	err := engine.Run(Mutation{
		Name:   "like post",
		Keys:   nil,
		Apply:  func(key string, prior interface{}) interface{} { return prior },
		Action: func() (interface{}, error) { return nil, errors.New("timeout") },
	})
	if err == nil {
		t.Fatal("Run should fail")
	}
	if got := err.Error(); got == "" {
		t.Error("Error should carry a message")
	}
}
