package fsm

import (
	"context"
	"sync"

	"github.com/looplab/fsm"
)

// StockStateMachine models a product's stock level as a two-state machine.
// It only observes transitions; it never drives stock mutations itself.
type StockStateMachine struct {
	fsm *fsm.FSM
	mu  sync.Mutex
}

func NewStockStateMachine() *StockStateMachine {
	ssm := &StockStateMachine{}
	ssm.fsm = fsm.NewFSM(
		StockStateInStock,
		fsm.Events{
			{Name: StockEventDeplete, Src: []string{StockStateInStock}, Dst: StockStateOutOfStock},
			{Name: StockEventRestock, Src: []string{StockStateOutOfStock}, Dst: StockStateInStock},
		},
		fsm.Callbacks{},
	)
	return ssm
}

// StateFor maps an availability count onto a stock state.
func StateFor(available int) string {
	if available > 0 {
		return StockStateInStock
	}
	return StockStateOutOfStock
}

func (ssm *StockStateMachine) CanTransition(currentState, event string) bool {
	ssm.mu.Lock()
	defer ssm.mu.Unlock()
	ssm.fsm.SetState(currentState)
	return ssm.fsm.Can(event)
}

func (ssm *StockStateMachine) Transition(ctx context.Context, currentState, event string) (string, error) {
	ssm.mu.Lock()
	defer ssm.mu.Unlock()
	ssm.fsm.SetState(currentState)
	if err := ssm.fsm.Event(ctx, event); err != nil {
		return "", err
	}
	return ssm.fsm.Current(), nil
}

// Depleted reports whether moving between the two availability counts
// crosses from in stock to out of stock.
func (ssm *StockStateMachine) Depleted(before, after int) bool {
	return after == 0 && ssm.CanTransition(StateFor(before), StockEventDeplete)
}

// Restocked reports whether moving between the two availability counts
// crosses from out of stock to in stock.
func (ssm *StockStateMachine) Restocked(before, after int) bool {
	return after > 0 && ssm.CanTransition(StateFor(before), StockEventRestock)
}
