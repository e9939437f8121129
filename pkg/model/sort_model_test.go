package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/reactive/pkg/model"
	reactivetest "github.com/go-drift/reactive/pkg/testing"
)

func ascending(a, b int) bool { return a < b }

func TestSortModelOrdersRows(t *testing.T) {
	src := model.FromSlice([]int{3, 1, 2})
	s := model.NewSortModel[int](src, ascending)
	defer s.Destroy()

	if diff := cmp.Diff([]int{1, 2, 3}, rows[int](s)); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSortModelRowChangedMoves(t *testing.T) {
	src := model.FromSlice([]int{3, 1, 2})
	s := model.NewSortModel[int](src, ascending)
	defer s.Destroy()
	if got := s.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(s)

	// 3 -> 0: the row moves from the end of the view to the front.
	src.SetRowData(0, 0)
	want := []string{"removed(2,1)", "added(0,1)"}
	if diff := cmp.Diff(want, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, rows[int](s)); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}

	// 1 -> 1: no reorder, data notification in place.
	src.SetRowData(1, 1)
	if diff := cmp.Diff([]string{"changed(1)"}, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestSortModelInsertion(t *testing.T) {
	src := model.FromSlice([]int{10, 30})
	s := model.NewSortModel[int](src, ascending)
	defer s.Destroy()
	if got := s.RowCount(); got != 2 {
		t.Fatalf("RowCount() = %d, want 2", got)
	}
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(s)

	src.Insert(1, 20, 5)
	want := []string{"added(1,1)", "added(0,1)"}
	if diff := cmp.Diff(want, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 10, 20, 30}, rows[int](s)); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSortModelRemovalRuns(t *testing.T) {
	src := model.FromSlice([]int{4, 1, 3, 2})
	s := model.NewSortModel[int](src, ascending)
	defer s.Destroy()
	if got := s.RowCount(); got != 4 {
		t.Fatalf("RowCount() = %d, want 4", got)
	}
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(s)

	// Source rows 1..2 hold {1,3}: view positions 0 and 2, two
	// separate removals after adjustment.
	src.RemoveRange(1, 2)
	want := []string{"removed(0,1)", "removed(1,1)"}
	if diff := cmp.Diff(want, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 4}, rows[int](s)); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSortModelEqualRowsKeepSourceOrder(t *testing.T) {
	type item struct {
		Key  int
		Name string
	}
	src := model.FromSlice([]item{
		{2, "first-two"},
		{1, "one"},
		{2, "second-two"},
	})
	s := model.NewSortModel[item](src, func(a, b item) bool { return a.Key < b.Key })
	defer s.Destroy()

	want := []item{{1, "one"}, {2, "first-two"}, {2, "second-two"}}
	if diff := cmp.Diff(want, rows[item](s)); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}

	// An equal key inserted later in the source sorts after the
	// existing equal keys.
	src.Push(item{2, "third-two"})
	got, _ := s.RowData(3)
	if got.Name != "third-two" {
		t.Errorf("RowData(3).Name = %q, want %q", got.Name, "third-two")
	}
}

func TestSortModelLazyWhileUnread(t *testing.T) {
	src := model.FromSlice([]int{3, 1})
	s := model.NewSortModel[int](src, ascending)
	defer s.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(s)

	// The permutation has never been built: structural changes degrade
	// to Reset instead of forcing an eager sort.
	src.Push(2)
	if diff := cmp.Diff([]string{"reset"}, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, rows[int](s)); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSortModelSetSortOrder(t *testing.T) {
	src := model.FromSlice([]int{2, 1, 3})
	s := model.NewSortModel[int](src, ascending)
	defer s.Destroy()
	if got := s.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(s)

	s.SetSortOrder(func(a, b int) bool { return a > b })
	if diff := cmp.Diff([]string{"reset"}, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 2, 1}, rows[int](s)); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSortModelSetRowDataForwards(t *testing.T) {
	src := model.FromSlice([]int{3, 1, 2})
	s := model.NewSortModel[int](src, ascending)
	defer s.Destroy()

	// View row 0 is source row 1 (value 1).
	s.SetRowData(0, 7)
	if got, _ := src.RowData(1); got != 7 {
		t.Errorf("source row 1 = %d, want forwarded write 7", got)
	}
}
