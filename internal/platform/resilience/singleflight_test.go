package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]any, 4)
	shared := make([]bool, 4)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _, shared[0] = flight.Do("roster", func() (any, error) {
			executions.Add(1)
			close(started)
			<-release
			return "payload", nil
		})
	}()

	<-started
	for i := 1; i < 4; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _, shared[i] = flight.Do("roster", func() (any, error) {
				executions.Add(1)
				return "payload", nil
			})
		}()
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected one execution, got=%d", got)
	}
	for i, result := range results {
		if result != "payload" {
			t.Fatalf("call %d: unexpected result %v", i, result)
		}
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var flight SingleFlight

	first, _, _ := flight.Do("a", func() (any, error) { return 1, nil })
	second, _, _ := flight.Do("b", func() (any, error) { return 2, nil })

	if first != 1 || second != 2 {
		t.Fatalf("unexpected results: first=%v second=%v", first, second)
	}
}
