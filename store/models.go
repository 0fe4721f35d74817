package store

import (
	"fmt"
	"time"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/date"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Hood is the persisted form of a happyhood.Hood.
type Hood struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex"`
	Houses    []House   `gorm:"foreignKey:HoodID"`
	CreatedAt int64     `gorm:"autoCreateTime:nano"`
}

// House is the persisted form of a happyhood.House.
//
// The address is flattened into street_address, city, state and zip_code columns.
// The price history is a JSON object of ISO dates to amounts.
type House struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	HoodID            uuid.UUID `gorm:"type:uuid;index"`
	happyhood.Address `gorm:"embedded"`
	Zpid              *string `gorm:"index"`
	PriceHistory      datatypes.JSONType[map[string]happyhood.Money]
	CreatedAt         int64 `gorm:"autoCreateTime:nano"` // unix nano, orders houses
	UpdatedAt         time.Time
}

// toHood converts a record into a domain hood, houses included.
func (r *Hood) toHood() (*happyhood.Hood, error) {
	hood := &happyhood.Hood{ID: r.ID, Name: r.Name}
	for i := range r.Houses {
		house, err := r.Houses[i].toHouse()
		if err != nil {
			return nil, err
		}
		hood.AddHouse(house)
	}
	return hood, nil
}

// toHouse converts a record into a domain house.
func (r *House) toHouse() (*happyhood.House, error) {
	h := &happyhood.House{ID: r.ID, HoodID: r.HoodID, Address: r.Address}
	if r.Zpid != nil {
		h.SetExternalID(*r.Zpid)
	}
	for day, amount := range r.PriceHistory.Data() {
		on, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("house %s: invalid price history: %w", r.ID, err)
		}
		h.AddValuation(on, amount)
	}
	return h, nil
}

// fromHouse converts a domain house into a record.
func fromHouse(h *happyhood.House) *House {
	r := &House{ID: h.ID, HoodID: h.HoodID, Address: h.Address}
	if id, ok := h.ExternalID(); ok {
		r.Zpid = &id
	}
	prices := make(map[string]happyhood.Money)
	for day, amount := range h.Valuations() {
		prices[day.String()] = amount
	}
	r.PriceHistory = datatypes.NewJSONType(prices)
	return r
}
