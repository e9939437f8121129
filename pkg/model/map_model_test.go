package model_test

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/reactive/pkg/errors"
	"github.com/go-drift/reactive/pkg/model"
	reactivetest "github.com/go-drift/reactive/pkg/testing"
)

func TestMapModelTransformsRows(t *testing.T) {
	src := model.FromSlice([]int{1, 2, 3})
	m := model.NewMapModel[int, string](src, strconv.Itoa)
	defer m.Destroy()

	if diff := cmp.Diff([]string{"1", "2", "3"}, rows[string](m)); diff != "" {
		t.Errorf("mapped rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMapModelPassesNotificationsThrough(t *testing.T) {
	src := model.FromSlice([]int{1, 2})
	m := model.NewMapModel[int, string](src, strconv.Itoa)
	defer m.Destroy()
	rec := &reactivetest.ModelRecorder{}
	rec.Observe(m)

	src.SetRowData(0, 9)
	src.Push(3)
	src.Remove(1)
	src.SetVec([]int{5})

	want := []string{"changed(0)", "added(2,1)", "removed(1,1)", "reset"}
	if diff := cmp.Diff(want, rec.Take()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"5"}, rows[string](m)); diff != "" {
		t.Errorf("mapped rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMapModelWriteIsReported(t *testing.T) {
	captured := &captureModelHandler{}
	errors.SetHandler(captured)
	defer errors.SetHandler(nil)

	src := model.FromSlice([]int{1})
	m := model.NewMapModel[int, string](src, strconv.Itoa)
	defer m.Destroy()

	m.SetRowData(0, "x")
	if got, _ := src.RowData(0); got != 1 {
		t.Errorf("source row mutated by read-only write: %d", got)
	}
	if len(captured.errs) != 1 || captured.errs[0].Kind != errors.KindReadOnlyModel {
		t.Errorf("expected one KindReadOnlyModel report, got %+v", captured.errs)
	}
}

func TestAdapterChain(t *testing.T) {
	src := model.FromSlice([]int{5, 2, 8, 1, 4})
	f := model.NewFilterModel[int](src, even)
	defer f.Destroy()
	s := model.NewSortModel[int](f, ascending)
	defer s.Destroy()
	m := model.NewMapModel[int, string](s, strconv.Itoa)
	defer m.Destroy()

	if diff := cmp.Diff([]string{"2", "4", "8"}, rows[string](m)); diff != "" {
		t.Errorf("chained rows mismatch (-want +got):\n%s", diff)
	}

	src.SetRowData(3, 6)
	if diff := cmp.Diff([]string{"2", "4", "6", "8"}, rows[string](m)); diff != "" {
		t.Errorf("chained rows after change mismatch (-want +got):\n%s", diff)
	}
}

type captureModelHandler struct {
	errs []*errors.ReactiveError
}

func (h *captureModelHandler) HandleError(err *errors.ReactiveError) {
	h.errs = append(h.errs, err)
}

func (h *captureModelHandler) HandlePanic(p *errors.PanicError) {}
