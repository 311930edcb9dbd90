// Package engine implements order processing: for each product referenced
// by an order it applies the stock and notification rules of the product's
// type and flushes every mutation back to the store before moving on.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/buildtall-systems/stockroom/internal/db"
	"github.com/buildtall-systems/stockroom/internal/fsm"
)

// Engine processes orders against the product store.
type Engine struct {
	store    *db.DB
	notifier Notifier
	clock    Clock
	stock    *fsm.StockStateMachine
	logger   *zap.Logger
}

func New(store *db.DB, notifier Notifier, clock Clock, logger *zap.Logger) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
		clock:    clock,
		stock:    fsm.NewStockStateMachine(),
		logger:   logger,
	}
}

// ProcessOrder loads the order and runs the type-specific handler for each
// of its items. Items are handled sequentially; each item's mutation is
// persisted before the next item starts. A handler error aborts the
// remaining items. Returns db.ErrOrderNotFound when the order is unknown,
// in which case nothing was touched.
func (e *Engine) ProcessOrder(ctx context.Context, orderID int64) (int64, error) {
	proc := fsm.NewProcessorFSM()
	proc.OnEnter(fsm.ProcessorStateDispatching, func() {
		e.logger.Debug("dispatching order items", zap.Int64("order_id", orderID))
	})

	e.logger.Info("processing order", zap.Int64("order_id", orderID))
	_ = proc.Event(ctx, fsm.ProcessorEventLoad)

	order, err := e.store.GetOrderByID(ctx, orderID)
	if err != nil {
		_ = proc.Event(ctx, fsm.ProcessorEventError)
		if errors.Is(err, db.ErrOrderNotFound) {
			e.logger.Error("order not found", zap.Int64("order_id", orderID))
		}
		return 0, err
	}

	_ = proc.Event(ctx, fsm.ProcessorEventDispatch)

	for i := range order.Items {
		p := &order.Items[i]

		switch p.Type {
		case db.TypeNormal:
			err = e.handleNormal(ctx, p)
		case db.TypeSeasonal:
			err = e.handleSeasonal(ctx, p)
		case db.TypeExpirable:
			err = e.handleExpirable(ctx, p)
		default:
			// Unknown type codes are skipped so newer writers don't
			// break older processors.
			continue
		}
		if err != nil {
			_ = proc.Event(ctx, fsm.ProcessorEventError)
			return 0, fmt.Errorf("processing product %d: %w", p.ID, err)
		}
	}

	_ = proc.Event(ctx, fsm.ProcessorEventComplete)
	return order.ID, nil
}

// handleNormal decrements stock while any remains; a depleted product with
// a lead time triggers a delay notification instead.
func (e *Engine) handleNormal(ctx context.Context, p *db.Product) error {
	if p.Available > 0 {
		return e.decrement(ctx, p)
	}
	if p.LeadTime > 0 {
		return e.notifyDelay(ctx, p.LeadTime, p)
	}
	return nil
}

// handleExpirable sells fresh stock and force-expires everything else.
// A product whose expiry date is today counts as expired.
func (e *Engine) handleExpirable(ctx context.Context, p *db.Product) error {
	today := e.clock.Today()

	if p.Available > 0 && p.ExpiryDate.After(today) {
		return e.decrement(ctx, p)
	}

	e.notifier.SendExpirationNotification(ctx, p.Name, p.ExpiryDate)
	return e.zeroStock(ctx, p)
}

// handleSeasonal evaluates its branches top to bottom; the first match
// wins. The lead-time-overruns-end branch sits above the not-yet-in-season
// branch on purpose: swapping them changes behavior for products whose
// season has not started but whose lead time would overrun the end.
func (e *Engine) handleSeasonal(ctx context.Context, p *db.Product) error {
	today := e.clock.Today()

	switch {
	case today.After(p.SeasonStartDate) && today.Before(p.SeasonEndDate) && p.Available > 0:
		return e.decrement(ctx, p)

	case today.AddDays(p.LeadTime).After(p.SeasonEndDate):
		e.notifier.SendOutOfStockNotification(ctx, p.Name)
		return e.zeroStock(ctx, p)

	case p.SeasonStartDate.After(today):
		// Season hasn't opened yet. The only seasonal path with no write.
		e.notifier.SendOutOfStockNotification(ctx, p.Name)
		return nil

	default:
		return e.notifyDelay(ctx, p.LeadTime, p)
	}
}

// notifyDelay records the lead time, persists, then emits the delay
// notification. Callers may pass a lead time that differs from the one on
// the record.
func (e *Engine) notifyDelay(ctx context.Context, leadTime int, p *db.Product) error {
	p.LeadTime = leadTime
	if err := e.store.SaveProduct(ctx, p); err != nil {
		return err
	}
	e.notifier.SendDelayNotification(ctx, leadTime, p.Name)
	return nil
}

func (e *Engine) decrement(ctx context.Context, p *db.Product) error {
	before := p.Available
	p.Available--
	if err := e.store.SaveProduct(ctx, p); err != nil {
		return err
	}
	if e.stock.Depleted(before, p.Available) {
		e.logger.Info("product depleted",
			zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	}
	return nil
}

func (e *Engine) zeroStock(ctx context.Context, p *db.Product) error {
	before := p.Available
	p.Available = 0
	if err := e.store.SaveProduct(ctx, p); err != nil {
		return err
	}
	if e.stock.Depleted(before, p.Available) {
		e.logger.Info("product depleted",
			zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	}
	return nil
}
