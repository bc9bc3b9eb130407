package pipeline

import (
	"reflect"
	"testing"

	"taskboard/internal/models"
)

func task(id, title string, status models.TaskStatus, due string) models.Task {
	return models.Task{ID: id, Title: title, Status: status, DueDate: due}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestProcess_FilterByStatus(t *testing.T) {
	tasks := []models.Task{
		task("1", "a", models.StatusPending, "2025-07-01"),
		task("2", "b", models.StatusCompleted, "2025-07-02"),
		task("3", "c", models.StatusPending, "2025-07-03"),
		task("4", "d", models.StatusInProgress, "2025-07-04"),
	}

	tests := []struct {
		filter    string
		wantTotal int
	}{
		{FilterAll, 4},
		{"pending", 2},
		{"in_progress", 1},
		{"completed", 1},
	}

	for _, tt := range tests {
		state := NewState()
		state.SetStatusFilter(tt.filter)
		got := Process(tasks, state)
		if got.TotalTasks != tt.wantTotal {
			t.Errorf("filter %q: expected total %d, got %d", tt.filter, tt.wantTotal, got.TotalTasks)
		}
		for _, tk := range got.Tasks {
			if tt.filter != FilterAll && string(tk.Status) != tt.filter {
				t.Errorf("filter %q: task %s has status %s", tt.filter, tk.ID, tk.Status)
			}
		}
	}
}

func TestProcess_SortByDueDateExample(t *testing.T) {
	tasks := []models.Task{
		task("1", "a", models.StatusPending, "2025-01-10"),
		task("2", "b", models.StatusCompleted, "2025-01-05"),
	}

	got := Process(tasks, NewState())

	if want := []string{"2", "1"}; !reflect.DeepEqual(ids(got.Tasks), want) {
		t.Errorf("expected order %v, got %v", want, ids(got.Tasks))
	}
	if got.TotalTasks != 2 {
		t.Errorf("expected total 2, got %d", got.TotalTasks)
	}
	if got.TotalPages != 1 {
		t.Errorf("expected 1 page, got %d", got.TotalPages)
	}
}

func TestProcess_SortByTitleCaseInsensitive(t *testing.T) {
	tasks := []models.Task{
		task("1", "banana", models.StatusPending, "2025-07-01"),
		task("2", "Apple", models.StatusPending, "2025-07-01"),
		task("3", "cherry", models.StatusPending, "2025-07-01"),
	}

	state := NewState()
	state.SortBy = SortByTitle

	got := Process(tasks, state)
	if want := []string{"2", "1", "3"}; !reflect.DeepEqual(ids(got.Tasks), want) {
		t.Errorf("expected order %v, got %v", want, ids(got.Tasks))
	}

	state.SortOrder = OrderDesc
	got = Process(tasks, state)
	if want := []string{"3", "1", "2"}; !reflect.DeepEqual(ids(got.Tasks), want) {
		t.Errorf("desc: expected order %v, got %v", want, ids(got.Tasks))
	}
}

func TestProcess_SortByStatusLiteralOrder(t *testing.T) {
	tasks := []models.Task{
		task("1", "a", models.StatusPending, "2025-07-01"),
		task("2", "b", models.StatusInProgress, "2025-07-01"),
		task("3", "c", models.StatusCompleted, "2025-07-01"),
	}

	state := NewState()
	state.SortBy = SortByStatus

	// completed < in_progress < pending by literal string comparison
	got := Process(tasks, state)
	if want := []string{"3", "2", "1"}; !reflect.DeepEqual(ids(got.Tasks), want) {
		t.Errorf("expected order %v, got %v", want, ids(got.Tasks))
	}
}

func TestProcess_SortIsStable(t *testing.T) {
	tasks := []models.Task{
		task("1", "same", models.StatusPending, "2025-07-01"),
		task("2", "same", models.StatusPending, "2025-07-01"),
		task("3", "same", models.StatusPending, "2025-07-01"),
		task("4", "same", models.StatusPending, "2025-07-01"),
	}

	for _, field := range []SortField{SortByTitle, SortByDueDate, SortByStatus} {
		state := NewState()
		state.SortBy = field
		got := Process(tasks, state)
		if want := []string{"1", "2", "3", "4"}; !reflect.DeepEqual(ids(got.Tasks), want) {
			t.Errorf("sortBy %s: equal keys reordered: %v", field, ids(got.Tasks))
		}

		state.SortOrder = OrderDesc
		got = Process(tasks, state)
		if want := []string{"1", "2", "3", "4"}; !reflect.DeepEqual(ids(got.Tasks), want) {
			t.Errorf("sortBy %s desc: equal keys reordered: %v", field, ids(got.Tasks))
		}
	}
}

func TestProcess_IsIdempotentAndPure(t *testing.T) {
	tasks := []models.Task{
		task("1", "b", models.StatusPending, "2025-07-02"),
		task("2", "a", models.StatusCompleted, "2025-07-01"),
	}
	before := models.CloneTasks(tasks)

	state := NewState()
	state.SortBy = SortByTitle

	first := Process(tasks, state)
	second := Process(tasks, state)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different outputs")
	}
	if !reflect.DeepEqual(tasks, before) {
		t.Error("Process mutated its input")
	}
}

func TestProcess_PaginationCoversFilteredSetOnce(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 23; i++ {
		tasks = append(tasks, task(string(rune('a'+i)), "t", models.StatusPending, "2025-07-01"))
	}

	state := NewState()
	state.PageSize = 10

	first := Process(tasks, state)
	if first.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", first.TotalPages)
	}

	seen := map[string]int{}
	total := 0
	for page := 1; page <= first.TotalPages; page++ {
		state.SetPage(page)
		got := Process(tasks, state)
		for _, tk := range got.Tasks {
			seen[tk.ID]++
			total++
		}
	}

	if total != len(tasks) {
		t.Errorf("expected %d tasks across pages, got %d", len(tasks), total)
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("task %s appeared %d times", id, n)
		}
	}
}

func TestProcess_PageBeyondRangeIsEmpty(t *testing.T) {
	tasks := []models.Task{
		task("1", "a", models.StatusPending, "2025-07-01"),
	}

	state := NewState()
	state.SetPage(5)

	got := Process(tasks, state)
	if len(got.Tasks) != 0 {
		t.Errorf("expected empty page, got %d tasks", len(got.Tasks))
	}
	if got.TotalTasks != 1 {
		t.Errorf("expected total 1, got %d", got.TotalTasks)
	}
	if got.TotalPages != 1 {
		t.Errorf("expected 1 page, got %d", got.TotalPages)
	}
}

func TestProcess_EmptyCollection(t *testing.T) {
	got := Process(nil, NewState())
	if got.TotalTasks != 0 || got.TotalPages != 0 || len(got.Tasks) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestState_ResetsPageOnFilterAndSortChange(t *testing.T) {
	state := NewState()
	state.SetPage(3)

	state.SetStatusFilter("pending")
	if state.CurrentPage != 1 {
		t.Error("filter change must reset the page")
	}

	state.SetPage(3)
	state.ToggleSort(SortByTitle)
	if state.CurrentPage != 1 {
		t.Error("sort change must reset the page")
	}
	if state.SortBy != SortByTitle || state.SortOrder != OrderAsc {
		t.Errorf("expected title/asc, got %s/%s", state.SortBy, state.SortOrder)
	}

	state.ToggleSort(SortByTitle)
	if state.SortOrder != OrderDesc {
		t.Error("toggling the active column must flip the order")
	}

	state.Reset()
	if !reflect.DeepEqual(state, NewState()) {
		t.Errorf("Reset should restore defaults, got %+v", state)
	}
}
