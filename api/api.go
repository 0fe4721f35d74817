// Package api exposes hoods, houses and their valuations over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/etnz/happyhood"
	"github.com/etnz/happyhood/date"
	"github.com/etnz/happyhood/renderer"
	"github.com/etnz/happyhood/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes registers the API routes on r.
//
// currency is the currency of valuations posted without one.
func RegisterRoutes(r *gin.Engine, s *store.Store, currency string) {
	h := NewHandler(s, currency)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	hoods := r.Group("/hoods")
	hoods.GET("", h.ListHoods)
	hoods.POST("", h.CreateHood)
	hoods.GET("/:name/valuation", h.HoodValuation)
	hoods.POST("/:name/houses", h.AddHouse)

	houses := r.Group("/houses")
	houses.GET("", h.FindHouses)
	houses.GET("/:id", h.GetHouse)
	houses.POST("/:id/valuations", h.AddValuation)

	r.GET("/differences", h.Differences)
}

// Handler implements the API endpoints on top of the record store.
type Handler struct {
	store    *store.Store
	currency string
}

func NewHandler(s *store.Store, currency string) *Handler {
	return &Handler{store: s, currency: currency}
}

type hoodView struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Houses int       `json:"houses"`
}

type valuationView struct {
	Date      date.Date       `json:"date"`
	Valuation happyhood.Money `json:"valuation"`
}

type houseView struct {
	ID     uuid.UUID `json:"id"`
	HoodID uuid.UUID `json:"hood_id"`
	happyhood.Address
	Zpid       string          `json:"zpid,omitempty"`
	Valuations []valuationView `json:"valuations"`
}

func newHouseView(h *happyhood.House) houseView {
	v := houseView{ID: h.ID, HoodID: h.HoodID, Address: h.Address, Valuations: []valuationView{}}
	v.Zpid, _ = h.ExternalID()
	for on, amount := range h.Valuations() {
		v.Valuations = append(v.Valuations, valuationView{Date: on, Valuation: amount})
	}
	return v
}

type differenceView struct {
	Hood   string          `json:"hood"`
	From   date.Date       `json:"from"`
	Before happyhood.Money `json:"before"`
	To     date.Date       `json:"to"`
	After  happyhood.Money `json:"after"`
	Delta  happyhood.Money `json:"delta"`
	Text   string          `json:"text"`
}

// abort answers err with the status matching its kind.
func abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, happyhood.ErrCurrencyMismatch):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// queryDate parses the query parameter key as a date, defaulting to today.
func queryDate(c *gin.Context, key string, def string) (date.Date, bool) {
	on, err := date.Parse(c.DefaultQuery(key, def))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return date.Date{}, false
	}
	return on, true
}

func (h *Handler) ListHoods(c *gin.Context) {
	hoods, err := h.store.Hoods(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	views := make([]hoodView, 0, len(hoods))
	for _, hood := range hoods {
		views = append(views, hoodView{ID: hood.ID, Name: hood.Name, Houses: len(hood.Houses)})
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (h *Handler) CreateHood(c *gin.Context) {
	var payload struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: a hood needs a name"})
		return
	}
	hood, err := h.store.CreateHood(c.Request.Context(), payload.Name)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, hoodView{ID: hood.ID, Name: hood.Name})
}

func (h *Handler) HoodValuation(c *gin.Context) {
	on, ok := queryDate(c, "date", "0d")
	if !ok {
		return
	}
	hood, err := h.store.Hood(c.Request.Context(), c.Param("name"))
	if err != nil {
		abort(c, err)
		return
	}
	snap := hood.ValuationOnOrBefore(on)
	if c.Query("before") == "true" {
		snap = hood.ValuationBefore(on)
	}
	c.JSON(http.StatusOK, gin.H{
		"hood":      hood.Name,
		"valued":    snap.Valued(),
		"date":      snap.On,
		"valuation": snap.Valuation,
		"text":      renderer.Snapshot(hood, snap),
	})
}

func (h *Handler) AddHouse(c *gin.Context) {
	var payload struct {
		happyhood.Address
		Zpid string `json:"zpid"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	ctx := c.Request.Context()
	hood, err := h.store.Hood(ctx, c.Param("name"))
	if err != nil {
		abort(c, err)
		return
	}
	house, err := h.store.AddHouse(ctx, hood, payload.Address)
	if err != nil {
		abort(c, err)
		return
	}
	if payload.Zpid != "" {
		house.SetExternalID(payload.Zpid)
		if err := h.store.SaveExternalID(ctx, house); err != nil {
			abort(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, newHouseView(house))
}

func (h *Handler) FindHouses(c *gin.Context) {
	filter := happyhood.Address{
		StreetAddress: c.Query("street_address"),
		City:          c.Query("city"),
		State:         c.Query("state"),
		ZipCode:       c.Query("zip_code"),
	}
	houses, err := h.store.FindHouses(c.Request.Context(), filter)
	if err != nil {
		abort(c, err)
		return
	}
	views := make([]houseView, 0, len(houses))
	for _, house := range houses {
		views = append(views, newHouseView(house))
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

// house loads the house of the :id parameter, or answers the error.
func (h *Handler) house(c *gin.Context) (*happyhood.House, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid house ID"})
		return nil, false
	}
	house, err := h.store.House(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return nil, false
	}
	return house, true
}

func (h *Handler) GetHouse(c *gin.Context) {
	if house, ok := h.house(c); ok {
		c.JSON(http.StatusOK, newHouseView(house))
	}
}

func (h *Handler) AddValuation(c *gin.Context) {
	var payload struct {
		Date     string `json:"date"`
		Amount   string `json:"amount" binding:"required"`
		Currency string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: amount is required"})
		return
	}
	if payload.Date == "" {
		payload.Date = "0d"
	}
	if payload.Currency == "" {
		payload.Currency = h.currency
	}
	on, err := date.Parse(payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := happyhood.ParseMoney(payload.Amount, payload.Currency)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	house, ok := h.house(c)
	if !ok {
		return
	}
	if err := h.store.SaveValuations(c.Request.Context(), house.AddValuation(on, amount)); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, newHouseView(house))
}

func (h *Handler) Differences(c *gin.Context) {
	from, ok := queryDate(c, "start", "-1m")
	if !ok {
		return
	}
	to, ok := queryDate(c, "end", "0d")
	if !ok {
		return
	}
	hoods, err := h.store.Hoods(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	diffs := happyhood.Differences(hoods, date.NewRange(from, to))
	views := make([]differenceView, 0, len(diffs))
	for _, d := range diffs {
		views = append(views, differenceView{
			Hood:   d.Hood.Name,
			From:   d.From,
			Before: d.Before,
			To:     d.To,
			After:  d.After,
			Delta:  d.Delta,
			Text:   renderer.Difference(d),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}
