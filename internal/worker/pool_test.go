package worker_test

import (
	"sort"
	"testing"

	"github.com/ksalp/lernportal/internal/worker"
)

func TestPool_RunsAllJobs(t *testing.T) {
	p := worker.NewPool[int](3, 10)

	for i := 0; i < 10; i++ {
		n := i
		if !p.TrySubmit(string(rune('a'+i)), func() int { return n * n }) {
			t.Fatalf("job %d rejected by a queue of 10", i)
		}
	}
	p.Close()

	var got []int
	for r := range p.Results() {
		got = append(got, r.Output)
	}
	sort.Ints(got)

	if len(got) != 10 {
		t.Fatalf("expected 10 results, got %d", len(got))
	}
	if got[9] != 81 {
		t.Errorf("expected largest result 81, got %d", got[9])
	}
}

func TestPool_TrySubmitFullQueue(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	p := worker.NewPool[int](1, 1)

	// Occupy the single worker, then fill the one-slot queue.
	if !p.TrySubmit("busy", func() int { close(started); <-block; return 0 }) {
		t.Fatal("expected the empty queue to accept a job")
	}
	<-started
	accepted := 0
	for i := 0; i < 5; i++ {
		if p.TrySubmit("extra", func() int { return 1 }) {
			accepted++
		}
	}
	close(block)
	p.Close()
	for range p.Results() {
	}

	if accepted != 1 {
		t.Errorf("expected the one-slot queue to accept 1 job, accepted %d", accepted)
	}
}

func TestPool_CloseTwice(t *testing.T) {
	p := worker.NewPool[int](1, 1)
	p.Close()
	p.Close()

	if _, ok := <-p.Results(); ok {
		t.Error("expected results to be closed")
	}
}
