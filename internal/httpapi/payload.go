package httpapi

import (
	"errors"

	"github.com/buildtall-systems/stockroom/internal/db"
)

// ProductPayload is the external representation of a product. Dates travel
// as ISO-8601 civil dates; the type as its integer code.
type ProductPayload struct {
	ID              int64   `json:"id"`
	LeadTime        int     `json:"leadTime"`
	Available       int     `json:"available"`
	Type            int     `json:"type"`
	Name            string  `json:"name"`
	ExpiryDate      db.Date `json:"expiryDate"`
	SeasonStartDate db.Date `json:"seasonStartDate"`
	SeasonEndDate   db.Date `json:"seasonEndDate"`
}

func (p ProductPayload) validate() error {
	if p.Name == "" {
		return errors.New("name must not be empty")
	}
	if p.Available < 0 {
		return errors.New("available must not be negative")
	}
	if p.LeadTime < 0 {
		return errors.New("leadTime must not be negative")
	}
	if !db.ProductType(p.Type).Known() {
		return errors.New("type must be 1 (normal), 2 (seasonal) or 3 (expirable)")
	}
	return nil
}

func (p ProductPayload) toRecord() *db.Product {
	return &db.Product{
		ID:              p.ID,
		Type:            db.ProductType(p.Type),
		Name:            p.Name,
		Available:       p.Available,
		LeadTime:        p.LeadTime,
		ExpiryDate:      p.ExpiryDate,
		SeasonStartDate: p.SeasonStartDate,
		SeasonEndDate:   p.SeasonEndDate,
	}
}

func payloadFrom(p *db.Product) ProductPayload {
	return ProductPayload{
		ID:              p.ID,
		LeadTime:        p.LeadTime,
		Available:       p.Available,
		Type:            int(p.Type),
		Name:            p.Name,
		ExpiryDate:      p.ExpiryDate,
		SeasonStartDate: p.SeasonStartDate,
		SeasonEndDate:   p.SeasonEndDate,
	}
}

// ProcessOrderResponse is the body returned by a successful processOrder.
type ProcessOrderResponse struct {
	ID int64 `json:"id"`
}
