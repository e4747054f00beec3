package critique_service

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// Every mutating operation here moves through the same states:
// idle -> validating -> awaiting-remote-write -> idle (with refresh or error).
// The in-flight guard enforces that no operation for a given target can be
// started while another instance for the same target is pending.

// OpState workflow operation state
type OpState string

const (
	StateIdle                OpState = "idle"
	StateValidating          OpState = "validating"
	StateAwaitingRemoteWrite OpState = "awaiting-remote-write"
	StateIdleWithRefresh     OpState = "idle-with-refresh"
	StateIdleWithError       OpState = "idle-with-error"
)

// StepPolicy failure policy of a workflow step
type StepPolicy int

const (
	// PolicyFatal step failure aborts the workflow and is the caller's result
	PolicyFatal StepPolicy = iota

	// PolicyBestEffort step failure is logged and never reported as the
	// workflow result
	PolicyBestEffort
)

// Step one step of a sequential workflow pipeline
type Step struct {
	Name   string
	Policy StepPolicy
	Run    func() error
}

// runSteps run a pipeline in order. The first fatal failure aborts; later
// steps are not attempted. Best-effort failures are logged only.
func runSteps(operation string, steps []Step) error {
	for _, step := range steps {
		err := step.Run()
		if err == nil {
			continue
		}
		if step.Policy == PolicyBestEffort {
			log.Printf("[%s] best-effort step %s failed: %v", operation, step.Name, err)
			continue
		}
		return fmt.Errorf("%s: %w", step.Name, err)
	}
	return nil
}

// ErrOperationInFlight an operation for the same target is already pending
var ErrOperationInFlight = errors.New("operation already in progress for this target")

// inflightGuard per-target single-flight guard. A second trigger for a busy
// target is refused outright, not queued or merged.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{
		active: make(map[string]struct{}),
	}
}

// begin mark the target busy. Returns false when it already is.
func (g *inflightGuard) begin(target string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[target]; busy {
		return false
	}
	g.active[target] = struct{}{}
	return true
}

// end release the target
func (g *inflightGuard) end(target string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, target)
}
