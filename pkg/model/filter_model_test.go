package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/reactive/pkg/errors"
	"github.com/go-drift/reactive/pkg/model"
	reactivetest "github.com/go-drift/reactive/pkg/testing"
)

func even(n int) bool { return n%2 == 0 }

func TestFilterModelDerivesSubset(t *testing.T) {
	src := model.FromSlice([]int{1, 2, 3, 4, 5})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()

	if diff := cmp.Diff([]int{2, 4}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterModelRemoveOfRejectedRowIsSilent(t *testing.T) {
	src := model.FromSlice([]int{1, 2, 3, 4, 5})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(f)

	// Row 0 holds 1, which the filter rejects: observers of the
	// filtered view must hear nothing.
	src.Remove(0)
	if len(rec.Take()) != 0 {
		t.Error("removal of a rejected row notified the filtered view")
	}
	if diff := cmp.Diff([]int{2, 4}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterModelRowChangedTransitions(t *testing.T) {
	src := model.FromSlice([]int{1, 2, 3, 4, 5})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(f)

	// 3 -> 6: row enters the subset between 2 and 4.
	src.SetRowData(2, 6)
	// 2 -> 7: row leaves the subset.
	src.SetRowData(1, 7)
	// 4 -> 8: accepted row stays accepted, data changed in place.
	src.SetRowData(3, 8)
	// 1 -> 9: rejected row stays rejected, silent.
	src.SetRowData(0, 9)

	want := []string{"added(1,1)", "removed(0,1)", "changed(1)"}
	if diff := cmp.Diff(want, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{6, 8}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterModelInsertionRenumbers(t *testing.T) {
	src := model.FromSlice([]int{2, 4, 6})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(f)

	// Mixed batch in the middle: only the even rows surface, as one
	// contiguous filtered insertion.
	src.Insert(1, 8, 9, 10)
	want := []string{"added(1,2)"}
	if diff := cmp.Diff(want, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 8, 10, 4, 6}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}

	// Insertion of only rejected rows still renumbers silently.
	src.Insert(0, 1, 3)
	if len(rec.Take()) != 0 {
		t.Error("insertion of rejected rows notified the filtered view")
	}
	if diff := cmp.Diff([]int{2, 8, 10, 4, 6}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch after renumber (-want +got):\n%s", diff)
	}
}

func TestFilterModelRangeRemoval(t *testing.T) {
	src := model.FromSlice([]int{2, 3, 4, 5, 6, 8})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(f)

	// Source rows 1..4 hold {3,4,5,6}; the accepted ones {4,6} are
	// contiguous in filtered space.
	src.RemoveRange(1, 4)
	want := []string{"removed(1,2)"}
	if diff := cmp.Diff(want, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 8}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterModelSetRowDataForwards(t *testing.T) {
	src := model.FromSlice([]int{1, 2, 3, 4})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()

	f.SetRowData(0, 10)
	if got, _ := src.RowData(1); got != 10 {
		t.Errorf("source row 1 = %d, want forwarded write 10", got)
	}
	if diff := cmp.Diff([]int{10, 4}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterModelOutOfRangeWriteIsLogged(t *testing.T) {
	captured := &captureModelHandler{}
	errors.SetHandler(captured)
	defer errors.SetHandler(nil)

	src := model.FromSlice([]int{1, 2, 3, 4})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()

	// Filtered space holds rows 0..1; row 2 does not exist.
	f.SetRowData(2, 6)
	if diff := cmp.Diff([]int{1, 2, 3, 4}, rows[int](src)); diff != "" {
		t.Errorf("source rows mutated (-want +got):\n%s", diff)
	}
	if len(captured.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(captured.errs))
	}
	if got := captured.errs[0].Kind; got != errors.KindRowOutOfRange {
		t.Errorf("error kind = %v, want %v", got, errors.KindRowOutOfRange)
	}
}

func TestFilterModelSetFilterResets(t *testing.T) {
	src := model.FromSlice([]int{1, 2, 3, 4, 5})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(f)

	f.SetFilter(func(n int) bool { return n%2 == 1 })
	if diff := cmp.Diff([]string{"reset"}, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 3, 5}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterModelSourceReset(t *testing.T) {
	src := model.FromSlice([]int{2, 4})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(f)

	src.SetVec([]int{5, 6, 7, 8})
	if diff := cmp.Diff([]string{"reset"}, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{6, 8}, rows[int](f)); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}
