package cases

import "errors"

// Error taxonomy. Setiap error yang keluar dari boundary Backend sudah
// di-tag dengan salah satu sentinel di bawah (wrap pakai %w), jadi caller
// cukup errors.Is tanpa lihat detail transport.

// ErrNotFound indicates a 404 on an id/entity lookup. Recoverable: callers
// render a "no data" state or fall back to a fresh analysis.
var ErrNotFound = errors.New("not found")

// ErrTransport indicates a network failure, timeout, or a non-2xx response
// not otherwise classified.
var ErrTransport = errors.New("transport failure")

// ErrValidation indicates a client-side precondition failure. It never
// reaches the network layer.
var ErrValidation = errors.New("validation failed")

// ErrReportGeneration indicates a report endpoint failure. Surfaced directly
// to the user, no silent retry.
var ErrReportGeneration = errors.New("report generation failed")
