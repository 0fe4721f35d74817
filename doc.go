// Package happyhood tracks the valuation of houses over time, grouped by
// neighborhood ("hood"), and reports how those valuations change.
//
// The core functionalities include:
//   - Valuation history: each House holds a date-keyed series of valuations,
//     with at most one valuation per day, queried exactly or "as of" a day.
//   - Hood aggregation: a Hood sums the valuations of its houses on the single
//     day shared by the most houses, so that totals are never built from
//     valuations taken on different days.
//   - Differences: compare hood totals between the two ends of a date range,
//     keeping only the hoods that actually changed.
//   - Identifier reconciliation: resolve missing external identifiers (Zillow
//     zpid) through a Resolver, house by house, in a best-effort batch.
//
// This package serves as the foundational logic for the `happyhood` command-line
// tool and its HTTP API. Rendering, persistence and notification live in the
// renderer, store and notify packages.
package happyhood
