package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-drift/reactive/cmd/reactive/internal/project"
	"github.com/go-drift/reactive/pkg/diagnostics"
	"github.com/go-drift/reactive/pkg/property"
)

func init() {
	RegisterCommand(&Command{
		Name:  "bench",
		Short: "Time dirty propagation over a binding chain",
		Long: `Build a chain of N bound properties, repeatedly write the head and
read the tail, and report how long invalidation plus lazy recomputation
takes per round trip.`,
		Usage: "reactive bench [cells] [rounds]",
		Run:   runBench,
	})
}

func runBench(args []string) error {
	cells := 10000
	rounds := 100
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 2 {
			return fmt.Errorf("invalid cell count %q", args[0])
		}
		cells = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid round count %q", args[1])
		}
		rounds = n
	}

	proj, err := project.Resolve()
	if err != nil {
		return err
	}
	proj.Config.Apply()
	diagnostics.Enable()
	diagnostics.Reset()

	head := property.New(0)
	tail := head
	for i := 1; i < cells; i++ {
		prev := tail
		next := property.New(0)
		next.SetBinding(func() int { return prev.Get() + 1 })
		tail = next
	}

	start := time.Now()
	for i := 0; i < rounds; i++ {
		head.Set(i + 1)
		if got := tail.Get(); got != i+1+cells-1 {
			return fmt.Errorf("chain produced %d, want %d", got, i+1+cells-1)
		}
	}
	elapsed := time.Since(start)

	snap := diagnostics.Take()
	fmt.Printf("%d cells, %d rounds: %s total, %s per round\n",
		cells, rounds, elapsed, elapsed/time.Duration(rounds))
	fmt.Printf("evaluations: %d, invalidations: %d\n",
		snap.Evaluations, snap.Invalidations)
	return nil
}
