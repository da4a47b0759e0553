package view

import (
	"context"
	"testing"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
	"github.com/tasksync/backend/repository/docstore"
	"github.com/tasksync/backend/store/memory"
	"github.com/tasksync/backend/usecase/resolver"
)

// End-to-end over the memory store: U1 creates a task assigned to U2;
// each user's board shows it exactly once, on the right side.
func TestEngine_Board(t *testing.T) {
	ctx := context.Background()
	docs := memory.New()
	tasks := docstore.NewTaskRepository(docs, nil)
	users := docstore.NewUserRepository(docs, nil)

	u1 := domain.Identity{UID: "u1", DisplayName: "Alice", Email: "alice@example.com"}
	if err := users.Upsert(ctx, &domain.User{ID: "u1", Username: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("seed u1: %v", err)
	}
	if err := users.Upsert(ctx, &domain.User{ID: "u2", Username: "Bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("seed u2: %v", err)
	}

	created, err := tasks.Create(ctx, repository.CreateTaskInput{
		Title:        "write report",
		DueDate:      "2024-06-01",
		AssignedUser: "u2",
	}, u1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	engine := NewEngine(tasks, resolver.New(users, nil), nil)

	board, err := engine.Board(ctx, "u1", DefaultSort())
	if err != nil {
		t.Fatalf("u1 board: %v", err)
	}
	if len(board.Mine) != 1 || len(board.Assigned) != 0 {
		t.Fatalf("u1: expected 1 mine / 0 assigned, got %d / %d", len(board.Mine), len(board.Assigned))
	}
	res, ok := board.Assignees[created.ID]
	if !ok {
		t.Fatal("missing assignee resolution for created task")
	}
	if res.State != resolver.Found || res.User == nil || res.User.Username != "Bob" {
		t.Errorf("expected assignee Bob, got %+v", res)
	}

	board, err = engine.Board(ctx, "u2", DefaultSort())
	if err != nil {
		t.Fatalf("u2 board: %v", err)
	}
	if len(board.Mine) != 0 || len(board.Assigned) != 1 {
		t.Fatalf("u2: expected 0 mine / 1 assigned, got %d / %d", len(board.Mine), len(board.Assigned))
	}
	if board.Assigned[0].ID != created.ID {
		t.Errorf("expected task %s on u2's assigned view", created.ID)
	}
}
