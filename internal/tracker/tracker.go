// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tracker records which entity fields have been modified since the
// last synchronization point with the Exchange store. Entities call Record
// from their setters; lifecycle code consults Fields to build minimal update
// payloads and Reset after a successful write round trip.
package tracker

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Tracker accumulates names of modified fields. It is not safe for concurrent
// use; entities owning a Tracker are single-goroutine objects.
type Tracker struct {
	enabled bool
	dirty   mapset.Set[string]
}

// New returns an enabled tracker with an empty dirty set. Each entity must
// own its own Tracker instance; the dirty set is never shared.
func New() *Tracker {
	return &Tracker{
		enabled: true,
		dirty:   mapset.NewThreadUnsafeSet[string](),
	}
}

// Record marks field as modified. Recording the same field twice keeps it in
// the set exactly once. Record is a no-op while the tracker is suspended.
func (t *Tracker) Record(field string) {
	if t.enabled {
		t.dirty.Add(field)
	}
}

// Suspend runs fn with tracking disabled. Used for bulk loads of server data
// or constructor values, which are not user edits and must not appear dirty.
func (t *Tracker) Suspend(fn func()) {
	t.enabled = false
	defer func() { t.enabled = true }()
	fn()
}

// Reset clears the dirty set. Called after a successful create or update and
// after hydration from server data.
func (t *Tracker) Reset() {
	t.dirty.Clear()
}

// Dirty reports whether any field has been modified.
func (t *Tracker) Dirty() bool {
	return t.dirty.Cardinality() > 0
}

// Has reports whether field is currently marked dirty.
func (t *Tracker) Has(field string) bool {
	return t.dirty.Contains(field)
}

// Fields returns the dirty field names in sorted order, so update payloads
// built from them are deterministic.
func (t *Tracker) Fields() []string {
	fields := t.dirty.ToSlice()
	sort.Strings(fields)
	return fields
}
