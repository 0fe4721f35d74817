package happyhood

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Resolution is the answer of a Resolver for a single address.
type Resolution struct {
	Success    bool
	ExternalID string // empty when the resolver knows the house but has no identifier
	Message    string // reason of the failure when !Success
}

// Resolver looks up the external identifier of a house from its address.
type Resolver interface {
	Resolve(ctx context.Context, addr Address) (Resolution, error)
}

// IdentifierStore persists the external identifier of a house.
type IdentifierStore interface {
	SaveExternalID(ctx context.Context, h *House) error
}

// ResolutionError is returned when the external identifier of a house could not be resolved.
type ResolutionError struct {
	HouseID uuid.UUID
	Message string
	Err     error // underlying transport error, if any
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not update zpid for house %s: %s", e.HouseID, e.Message)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ReconciliationResult counts the outcome of a FillMissing batch.
type ReconciliationResult struct {
	UpdatedCount int `json:"updated_count"`
	TotalHouses  int `json:"total_houses"`
}

func (r ReconciliationResult) String() string {
	return fmt.Sprintf("updated %d of %d houses", r.UpdatedCount, r.TotalHouses)
}

// Reconciler fills the missing external identifiers of houses.
type Reconciler struct {
	Resolver Resolver
	Store    IdentifierStore // optional, houses are only updated in memory when nil
	Workers  int             // maximum concurrent resolutions, 1 when <= 0
}

// ResolveOne resolves and saves the external identifier of a single house.
//
// A failed resolution returns a *ResolutionError and leaves the house untouched.
// A successful resolution without identifier is not an error, the house is left untouched too.
func (r *Reconciler) ResolveOne(ctx context.Context, h *House) error {
	res, err := r.Resolver.Resolve(ctx, h.Address)
	if err != nil {
		return &ResolutionError{HouseID: h.ID, Message: err.Error(), Err: err}
	}
	if !res.Success {
		return &ResolutionError{HouseID: h.ID, Message: res.Message}
	}
	if res.ExternalID == "" {
		return nil
	}

	previous := h.zpid
	h.SetExternalID(res.ExternalID)
	if r.Store == nil {
		return nil
	}
	if err := r.Store.SaveExternalID(ctx, h); err != nil {
		h.zpid = previous
		return fmt.Errorf("saving zpid for house %s: %w", h.ID, err)
	}
	return nil
}

// outcome is the result of a single house resolution in a batch.
type outcome struct {
	house   *House
	updated bool
	err     error
}

// FillMissing resolves every house without an external identifier.
//
// It is a best-effort batch: a failure is logged and counted, it never stops
// the other houses from being resolved. Houses that already have an
// identifier are not attempted.
func (r *Reconciler) FillMissing(ctx context.Context, houses []*House) ReconciliationResult {
	pending := make([]*House, 0, len(houses))
	for _, h := range houses {
		if _, ok := h.ExternalID(); !ok {
			pending = append(pending, h)
		}
	}

	outcomes := make([]outcome, len(pending))
	var g errgroup.Group
	g.SetLimit(max(r.Workers, 1))
	for i, h := range pending {
		g.Go(func() error {
			err := r.ResolveOne(ctx, h)
			_, updated := h.ExternalID()
			outcomes[i] = outcome{house: h, updated: err == nil && updated, err: err}
			return nil
		})
	}
	g.Wait()

	return reduce(outcomes)
}

// reduce counts outcomes into a ReconciliationResult.
func reduce(outcomes []outcome) ReconciliationResult {
	result := ReconciliationResult{TotalHouses: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			log.Printf("warning: %v", o.err)
		case o.updated:
			result.UpdatedCount++
		default:
			log.Printf("no zpid found for %v", o.house)
		}
	}
	return result
}
