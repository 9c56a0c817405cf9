// Package stores holds the client-side caches of backend resources: one
// store per resource plus the actions that mutate it. A store's collection is
// an in-memory mirror replaced wholesale on fetch; staleness is bounded only
// by the next fetch.
//
// Error contracts are deliberately per-resource, matching what callers
// expect, and are not unified:
//
//   - ProductStore fetch/delete/category actions swallow failures: the error
//     is logged and recorded on the store (Err), nothing is returned. Product
//     writes (add, bulk add, update) record the error and also return it so
//     the caller can react.
//   - SettingsStore fetches swallow-and-log; Update reports a bare boolean
//     success flag and never returns an error.
//   - AnalyticsStore fetches swallow-and-log; its projections are read-only
//     and never mutated locally.
package stores
