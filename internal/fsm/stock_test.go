package fsm

import (
	"context"
	"testing"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		available int
		want      string
	}{
		{5, StockStateInStock},
		{1, StockStateInStock},
		{0, StockStateOutOfStock},
	}

	for _, tt := range tests {
		if got := StateFor(tt.available); got != tt.want {
			t.Errorf("StateFor(%d) = %s, want %s", tt.available, got, tt.want)
		}
	}
}

func TestStockStateMachine_CanTransition(t *testing.T) {
	ssm := NewStockStateMachine()

	tests := []struct {
		state string
		event string
		want  bool
	}{
		{StockStateInStock, StockEventDeplete, true},
		{StockStateInStock, StockEventRestock, false},
		{StockStateOutOfStock, StockEventRestock, true},
		{StockStateOutOfStock, StockEventDeplete, false},
	}

	for _, tt := range tests {
		t.Run(tt.state+"_"+tt.event, func(t *testing.T) {
			got := ssm.CanTransition(tt.state, tt.event)
			if got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.state, tt.event, got, tt.want)
			}
		})
	}
}

func TestStockStateMachine_Transition(t *testing.T) {
	ssm := NewStockStateMachine()
	ctx := context.Background()

	state, err := ssm.Transition(ctx, StockStateInStock, StockEventDeplete)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if state != StockStateOutOfStock {
		t.Errorf("expected %s, got %s", StockStateOutOfStock, state)
	}

	if _, err := ssm.Transition(ctx, StockStateOutOfStock, StockEventDeplete); err == nil {
		t.Error("expected error depleting an out-of-stock state")
	}
}

func TestStockStateMachine_DepletedRestocked(t *testing.T) {
	ssm := NewStockStateMachine()

	tests := []struct {
		name          string
		before, after int
		wantDepleted  bool
		wantRestocked bool
	}{
		{"sold last unit", 1, 0, true, false},
		{"already empty", 0, 0, false, false},
		{"still stocked", 5, 4, false, false},
		{"restocked", 0, 10, false, true},
		{"stock increased", 3, 10, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ssm.Depleted(tt.before, tt.after); got != tt.wantDepleted {
				t.Errorf("Depleted(%d, %d) = %v, want %v", tt.before, tt.after, got, tt.wantDepleted)
			}
			if got := ssm.Restocked(tt.before, tt.after); got != tt.wantRestocked {
				t.Errorf("Restocked(%d, %d) = %v, want %v", tt.before, tt.after, got, tt.wantRestocked)
			}
		})
	}
}
