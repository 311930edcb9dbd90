package fsm

const (
	StockStateInStock    = "in_stock"
	StockStateOutOfStock = "out_of_stock"
)

const (
	StockEventDeplete = "deplete"
	StockEventRestock = "restock"
)

const (
	ProcessorStateIdle        = "idle"
	ProcessorStateLoading     = "loading_order"
	ProcessorStateDispatching = "dispatching"
)

const (
	ProcessorEventLoad     = "order_received"
	ProcessorEventDispatch = "order_loaded"
	ProcessorEventComplete = "order_processed"
	ProcessorEventError    = "error"
)
