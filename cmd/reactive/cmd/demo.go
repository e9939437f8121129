package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/go-drift/reactive/cmd/reactive/internal/project"
	"github.com/go-drift/reactive/pkg/diagnostics"
	"github.com/go-drift/reactive/pkg/model"
	"github.com/go-drift/reactive/pkg/platform"
	"github.com/go-drift/reactive/pkg/property"
	"github.com/go-drift/reactive/pkg/repeater"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run the model/repeater walkthrough",
		Long: `Run a self-contained walkthrough of the runtime: a mutable row
model flows through filter and sort adapters into a repeater, while a
repeated timer mutates the source on the event loop. Each frame prints
only what actually changed.

With counters enabled in reactive.yaml (or via the config at the
enclosing module root), the run ends with a diagnostics dump.`,
		Usage: "reactive demo",
		Run:   runDemo,
	})
}

// demoRow is the repeater instance type of the walkthrough: a stand-in
// for a per-row component that renders to stdout.
type demoRow struct {
	index int
	value int
}

func runDemo(args []string) error {
	proj, err := project.Resolve()
	if err != nil {
		return err
	}
	proj.Config.Apply()
	diagnostics.Reset()

	source := model.NewVecModel(9, 4, 7, 2, 5, 8, 3)
	evens := model.NewFilterModel[int](source, func(n int) bool { return n%2 == 0 })
	defer evens.Destroy()
	sorted := model.NewSortModel[int](evens, func(a, b int) bool { return a < b })
	defer sorted.Destroy()

	rep := repeater.New[int, *demoRow](
		func() *demoRow { return &demoRow{} },
		func(row *demoRow, index, value int) {
			row.index = index
			row.value = value
			fmt.Printf("  update row %d -> %d\n", index, value)
		},
	)
	defer rep.Destroy()
	rep.SetDropInstance(func(row *demoRow) {
		fmt.Printf("  drop row %d (%d)\n", row.index, row.value)
	})
	rep.SetModel(sorted)

	tracker := property.NewTracker()
	defer tracker.Destroy()
	frame := func(label string) {
		if !tracker.IsDirty() {
			return
		}
		fmt.Printf("frame: %s\n", label)
		tracker.Evaluate(func() { rep.EnsureUpdated() })
	}
	frame("initial")

	loop := platform.NewLoop()
	step := 0
	mutations := []struct {
		label string
		apply func()
	}{
		{"append 6", func() { source.Push(6) }},
		{"row 1: 4 -> 1", func() { source.SetRowData(1, 1) }},
		{"row 3: 2 -> 10", func() { source.SetRowData(3, 10) }},
		{"remove row 0", func() { source.Remove(0) }},
		{"replace contents", func() { source.SetVec([]int{12, 11, 10}) }},
	}
	loop.Timers().NewTimer().Start(platform.Repeated, 50*time.Millisecond, func() {
		if step >= len(mutations) {
			loop.Quit()
			return
		}
		m := mutations[step]
		m.apply()
		frame(m.label)
		step++
	})
	loop.Run()

	if diagnostics.Enabled() {
		out, err := diagnostics.Dump(diagnostics.Take())
		if err != nil {
			return err
		}
		fmt.Println("counters:")
		os.Stdout.Write(out)
	}
	return nil
}
