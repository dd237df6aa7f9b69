// Package ingest provides the news ingestion use case: validate the pushed
// article, classify it, derive the major-news flag, persist it and trigger
// a background retention cleanup.
package ingest

import "errors"

// ErrClassifierUnavailable indicates no classifier was wired into the
// service. This is a wiring bug, not a runtime condition.
var ErrClassifierUnavailable = errors.New("no classifier configured")
