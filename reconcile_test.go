package happyhood

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// fakeResolver answers from a map of street address to resolution.
type fakeResolver map[string]Resolution

func (f fakeResolver) Resolve(_ context.Context, addr Address) (Resolution, error) {
	res, ok := f[addr.StreetAddress]
	if !ok {
		return Resolution{}, errors.New("connection refused")
	}
	return res, nil
}

// memStore records saved identifiers.
type memStore struct {
	mu    sync.Mutex
	saved map[string]string
	err   error
}

func (s *memStore) SaveExternalID(_ context.Context, h *House) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string]string)
	}
	s.saved[h.StreetAddress], _ = h.ExternalID()
	return nil
}

func houseAt(street string) *House {
	return NewHouse(Address{StreetAddress: street, City: "Salt Lake City", State: "UT", ZipCode: "84044"})
}

func TestResolveOne(t *testing.T) {
	resolver := fakeResolver{
		"gone":   {Success: false, Message: "House was obliterated three years ago"},
		"no-id":  {Success: true},
		"has-id": {Success: true, ExternalID: "my-zpid-from-zillow"},
	}

	t.Run("resolver failure", func(t *testing.T) {
		house := houseAt("gone")
		r := &Reconciler{Resolver: resolver}
		err := r.ResolveOne(context.Background(), house)

		var rerr *ResolutionError
		if !errors.As(err, &rerr) {
			t.Fatalf("ResolveOne() error = %v want a *ResolutionError", err)
		}
		if rerr.HouseID != house.ID {
			t.Errorf("ResolutionError.HouseID = %v want %v", rerr.HouseID, house.ID)
		}
		for _, want := range []string{"could not update zpid for house", "House was obliterated"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("ResolveOne() error = %q want it to contain %q", err, want)
			}
		}
		if _, ok := house.ExternalID(); ok {
			t.Errorf("house has a zpid after a failure")
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		r := &Reconciler{Resolver: resolver}
		err := r.ResolveOne(context.Background(), houseAt("unknown"))
		var rerr *ResolutionError
		if !errors.As(err, &rerr) || rerr.Err == nil {
			t.Errorf("ResolveOne() error = %v want a *ResolutionError wrapping the transport error", err)
		}
	})

	t.Run("no zpid", func(t *testing.T) {
		house := houseAt("no-id")
		store := new(memStore)
		r := &Reconciler{Resolver: resolver, Store: store}
		if err := r.ResolveOne(context.Background(), house); err != nil {
			t.Fatalf("ResolveOne() error = %v", err)
		}
		if _, ok := house.ExternalID(); ok {
			t.Errorf("house has a zpid, want unchanged")
		}
		if len(store.saved) != 0 {
			t.Errorf("store saved %v, want nothing", store.saved)
		}
	})

	t.Run("zpid", func(t *testing.T) {
		house := houseAt("has-id")
		store := new(memStore)
		r := &Reconciler{Resolver: resolver, Store: store}
		if err := r.ResolveOne(context.Background(), house); err != nil {
			t.Fatalf("ResolveOne() error = %v", err)
		}
		if id, _ := house.ExternalID(); id != "my-zpid-from-zillow" {
			t.Errorf("ExternalID() = %q want %q", id, "my-zpid-from-zillow")
		}
		if store.saved["has-id"] != "my-zpid-from-zillow" {
			t.Errorf("store saved %v want my-zpid-from-zillow", store.saved)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		house := houseAt("has-id")
		r := &Reconciler{Resolver: resolver, Store: &memStore{err: errors.New("disk full")}}
		if err := r.ResolveOne(context.Background(), house); err == nil {
			t.Fatalf("ResolveOne() want an error")
		}
		if _, ok := house.ExternalID(); ok {
			t.Errorf("house has a zpid after a store failure")
		}
	})
}

func TestFillMissing(t *testing.T) {
	resolver := fakeResolver{
		"123": {Success: true, ExternalID: "my-zpid-from-zillow"},
		"abc": {Success: false, Message: "house is a trashbin"},
		"xyz": {Success: true, ExternalID: "another-zpid"},
	}

	tests := []struct {
		name    string
		streets []string
		workers int
		want    ReconciliationResult
		zpids   map[string]string
	}{
		{"no houses", nil, 1, ReconciliationResult{0, 0}, map[string]string{}},
		{"all update", []string{"123", "xyz"}, 1, ReconciliationResult{2, 2}, map[string]string{"123": "my-zpid-from-zillow", "xyz": "another-zpid"}},
		{"one fails", []string{"123", "abc"}, 1, ReconciliationResult{1, 2}, map[string]string{"123": "my-zpid-from-zillow"}},
		{"in parallel", []string{"123", "abc", "xyz", "down"}, 4, ReconciliationResult{2, 4}, map[string]string{"123": "my-zpid-from-zillow", "xyz": "another-zpid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			houses := make([]*House, 0, len(tt.streets))
			for _, street := range tt.streets {
				houses = append(houses, houseAt(street))
			}
			store := &memStore{saved: make(map[string]string)}
			r := &Reconciler{Resolver: resolver, Store: store, Workers: tt.workers}

			got := r.FillMissing(context.Background(), houses)
			if got != tt.want {
				t.Errorf("FillMissing() = %+v want %+v", got, tt.want)
			}
			for _, h := range houses {
				id, ok := h.ExternalID()
				want, wantOK := tt.zpids[h.StreetAddress]
				if id != want || ok != wantOK {
					t.Errorf("house %q ExternalID() = %q, %v want %q, %v", h.StreetAddress, id, ok, want, wantOK)
				}
			}
			if len(store.saved) != len(tt.zpids) {
				t.Errorf("store saved %v want %v", store.saved, tt.zpids)
			}
		})
	}
}

func TestFillMissingSkipsKnownHouses(t *testing.T) {
	known := houseAt("123")
	known.SetExternalID("already")

	r := &Reconciler{Resolver: fakeResolver{}}
	if got := r.FillMissing(context.Background(), []*House{known}); got != (ReconciliationResult{}) {
		t.Errorf("FillMissing() = %+v want nothing attempted", got)
	}
	if id, _ := known.ExternalID(); id != "already" {
		t.Errorf("ExternalID() = %q want %q", id, "already")
	}
}
