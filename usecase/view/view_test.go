package view

import (
	"testing"

	"github.com/tasksync/backend/domain"
)

func taskWithDue(id, due string) domain.Task {
	return domain.Task{ID: id, Title: "t-" + id, DueDate: due, Status: domain.StatusPending}
}

func TestSort_DueDateAscending(t *testing.T) {
	tasks := []domain.Task{
		taskWithDue("a", "2024-03-01"),
		taskWithDue("b", "2024-01-15"),
		taskWithDue("c", "2024-02-10"),
	}

	Sort(tasks, SortState{By: ColumnDueDate, Order: OrderAsc})

	want := []string{"2024-01-15", "2024-02-10", "2024-03-01"}
	for i, due := range want {
		if tasks[i].DueDate != due {
			t.Errorf("position %d: expected %s, got %s", i, due, tasks[i].DueDate)
		}
	}
}

func TestSort_DueDateDescending(t *testing.T) {
	tasks := []domain.Task{
		taskWithDue("a", "2024-03-01"),
		taskWithDue("b", "2024-01-15"),
		taskWithDue("c", "2024-02-10"),
	}

	Sort(tasks, SortState{By: ColumnDueDate, Order: OrderDesc})

	want := []string{"2024-03-01", "2024-02-10", "2024-01-15"}
	for i, due := range want {
		if tasks[i].DueDate != due {
			t.Errorf("position %d: expected %s, got %s", i, due, tasks[i].DueDate)
		}
	}
}

func TestSort_DatesCompareAsCalendarDates(t *testing.T) {
	// "2024-9-05" style values never reach storage, but a lexical
	// comparison of ISO dates across years is the classic trap; assert
	// chronology wins.
	tasks := []domain.Task{
		taskWithDue("a", "2025-01-02"),
		taskWithDue("b", "2024-12-31"),
	}

	Sort(tasks, SortState{By: ColumnDueDate, Order: OrderAsc})

	if tasks[0].ID != "b" {
		t.Errorf("expected 2024-12-31 first, got %s", tasks[0].DueDate)
	}
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	tasks := []domain.Task{
		{ID: "first", Title: "z", DueDate: "2024-05-01"},
		{ID: "second", Title: "a", DueDate: "2024-05-01"},
		{ID: "third", Title: "m", DueDate: "2024-05-01"},
	}

	Sort(tasks, SortState{By: ColumnDueDate, Order: OrderAsc})

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("position %d: expected %s, got %s (stability violated)", i, id, tasks[i].ID)
		}
	}

	Sort(tasks, SortState{By: ColumnDueDate, Order: OrderDesc})
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("desc position %d: expected %s, got %s (stability violated)", i, id, tasks[i].ID)
		}
	}
}

func TestSort_TitleCaseSensitive(t *testing.T) {
	tasks := []domain.Task{
		{ID: "lower", Title: "apple"},
		{ID: "upper", Title: "Banana"},
	}

	Sort(tasks, SortState{By: ColumnTitle, Order: OrderAsc})

	// 'B' < 'a' in a case-sensitive comparison
	if tasks[0].ID != "upper" {
		t.Errorf("expected case-sensitive order, got %q first", tasks[0].Title)
	}
}

func TestSortState_Toggle(t *testing.T) {
	s := DefaultSort()
	if s.By != ColumnDueDate || s.Order != OrderAsc {
		t.Fatalf("unexpected default: %+v", s)
	}

	s = s.Toggle(ColumnDueDate)
	if s.Order != OrderDesc {
		t.Errorf("same column should flip to desc, got %s", s.Order)
	}

	s = s.Toggle(ColumnDueDate)
	if s.Order != OrderAsc {
		t.Errorf("same column should flip back to asc, got %s", s.Order)
	}

	s = s.Toggle(ColumnStatus)
	if s.By != ColumnStatus || s.Order != OrderAsc {
		t.Errorf("new column should reset to asc, got %+v", s)
	}
}

func TestPartition_Disjoint(t *testing.T) {
	u1 := "user-1"
	u2 := "user-2"

	taskA := domain.Task{
		ID:           "A",
		AssignedUser: u2,
		User:         domain.Identity{UID: u1},
	}
	selfAssigned := domain.Task{
		ID:           "B",
		AssignedUser: u1,
		User:         domain.Identity{UID: u1},
	}
	unrelated := domain.Task{
		ID:           "C",
		AssignedUser: "user-3",
		User:         domain.Identity{UID: "user-4"},
	}
	all := []domain.Task{taskA, selfAssigned, unrelated}

	mine, assigned := Partition(all, u1)
	if len(mine) != 2 || len(assigned) != 0 {
		t.Fatalf("u1: expected 2 mine / 0 assigned, got %d / %d", len(mine), len(assigned))
	}
	// self-assigned task must land in "my tasks" only
	for _, task := range assigned {
		if task.ID == "B" {
			t.Error("self-assigned task leaked into assigned view")
		}
	}

	mine, assigned = Partition(all, u2)
	if len(mine) != 0 || len(assigned) != 1 {
		t.Fatalf("u2: expected 0 mine / 1 assigned, got %d / %d", len(mine), len(assigned))
	}
	if assigned[0].ID != "A" {
		t.Errorf("expected task A assigned to u2, got %s", assigned[0].ID)
	}
}

func TestEditTracker_SurvivesResort(t *testing.T) {
	tasks := []domain.Task{
		taskWithDue("x", "2024-03-01"),
		taskWithDue("y", "2024-01-01"),
	}

	tracker := NewEditTracker()
	tracker.Open("x")

	Sort(tasks, SortState{By: ColumnDueDate, Order: OrderAsc})

	if !tracker.IsOpen("x") {
		t.Error("modal state lost after resort")
	}
	if tracker.IsOpen("y") {
		t.Error("modal state attached to wrong task")
	}
}

func TestEditTracker_Prune(t *testing.T) {
	tracker := NewEditTracker()
	tracker.Open("gone")
	tracker.Open("kept")

	tracker.Prune([]domain.Task{{ID: "kept"}})

	if tracker.IsOpen("gone") {
		t.Error("deleted task's modal state should be pruned")
	}
	if !tracker.IsOpen("kept") {
		t.Error("surviving task's modal state should remain")
	}
}
