package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository/docstore"
	"github.com/tasksync/backend/store/memory"
)

func seedUser(t *testing.T, docs *memory.Store, id, name string) {
	t.Helper()
	users := docstore.NewUserRepository(docs, nil)
	if err := users.Upsert(context.Background(), &domain.User{ID: id, Username: name}); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func TestResolveAssignees_DeduplicatesLookups(t *testing.T) {
	ctx := context.Background()
	docs := memory.New()
	seedUser(t, docs, "shared", "Shared")

	r := New(docstore.NewUserRepository(docs, nil), nil)

	tasks := []domain.Task{
		{ID: "t1", AssignedUser: "shared"},
		{ID: "t2", AssignedUser: "shared"},
		{ID: "t3", AssignedUser: "ghost"},
	}

	result, warn := r.ResolveAssignees(ctx, tasks)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result))
	}

	if got := docs.Gets["users/shared"]; got != 1 {
		t.Errorf("expected exactly 1 lookup for shared assignee, got %d", got)
	}

	for _, id := range []string{"t1", "t2"} {
		res := result[id]
		if res.State != Found || res.User == nil || res.User.ID != "shared" {
			t.Errorf("%s: expected Found(shared), got %+v", id, res)
		}
	}
	if result["t3"].State != Missing {
		t.Errorf("t3: expected Missing for dangling reference, got %+v", result["t3"])
	}
}

func TestResolveAssignees_FailureDoesNotAbortBatch(t *testing.T) {
	ctx := context.Background()
	docs := memory.New()
	seedUser(t, docs, "ok", "OK")

	ioErr := errors.New("connection reset")
	docs.FailWith("users/bad", ioErr)

	r := New(docstore.NewUserRepository(docs, nil), nil)

	tasks := []domain.Task{
		{ID: "t1", AssignedUser: "ok"},
		{ID: "t2", AssignedUser: "bad"},
	}

	result, warn := r.ResolveAssignees(ctx, tasks)
	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result))
	}

	if result["t1"].State != Found {
		t.Errorf("healthy lookup degraded by sibling failure: %+v", result["t1"])
	}

	res := result["t2"]
	if res.State != Failed || res.Err == nil {
		t.Fatalf("expected Failed with error, got %+v", res)
	}
	if !errors.Is(res.Err, ioErr) {
		t.Errorf("expected wrapped I/O error, got %v", res.Err)
	}

	if warn == nil {
		t.Error("expected aggregated warning for the failed lookup")
	}
}

func TestResolveAssignees_EmptyBatch(t *testing.T) {
	r := New(docstore.NewUserRepository(memory.New(), nil), nil)

	result, warn := r.ResolveAssignees(context.Background(), nil)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if len(result) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(result))
	}
}

func TestListCandidates_ExcludesCaller(t *testing.T) {
	ctx := context.Background()
	docs := memory.New()
	seedUser(t, docs, "me", "Me")
	seedUser(t, docs, "other-1", "One")
	seedUser(t, docs, "other-2", "Two")

	r := New(docstore.NewUserRepository(docs, nil), nil)

	candidates, err := r.ListCandidates(ctx, "me")
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	for _, user := range candidates {
		if user.ID == "me" {
			t.Error("caller present in candidate list")
		}
	}
}
