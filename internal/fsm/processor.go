package fsm

import (
	"context"
	"sync"

	"github.com/looplab/fsm"
)

// ProcessorFSM tracks the lifecycle of a single order-processing request:
// idle -> loading_order -> dispatching -> idle. One instance per request.
type ProcessorFSM struct {
	fsm     *fsm.FSM
	mu      sync.Mutex
	onEnter map[string]func()
}

func NewProcessorFSM() *ProcessorFSM {
	pf := &ProcessorFSM{
		onEnter: make(map[string]func()),
	}
	pf.fsm = fsm.NewFSM(
		ProcessorStateIdle,
		fsm.Events{
			{Name: ProcessorEventLoad, Src: []string{ProcessorStateIdle}, Dst: ProcessorStateLoading},
			{Name: ProcessorEventDispatch, Src: []string{ProcessorStateLoading}, Dst: ProcessorStateDispatching},
			{Name: ProcessorEventComplete, Src: []string{ProcessorStateDispatching}, Dst: ProcessorStateIdle},
			{Name: ProcessorEventError, Src: []string{ProcessorStateLoading, ProcessorStateDispatching}, Dst: ProcessorStateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if fn, ok := pf.onEnter[e.Dst]; ok {
					fn()
				}
			},
		},
	)
	return pf
}

func (pf *ProcessorFSM) Current() string {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.fsm.Current()
}

func (pf *ProcessorFSM) Event(ctx context.Context, event string) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.fsm.Event(ctx, event)
}

func (pf *ProcessorFSM) Can(event string) bool {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.fsm.Can(event)
}

func (pf *ProcessorFSM) OnEnter(state string, fn func()) {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	pf.onEnter[state] = fn
}
