package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartsClean(t *testing.T) {
	tr := New()

	assert.False(t, tr.Dirty())
	assert.Empty(t, tr.Fields())
}

func TestTracker_RecordAddsFieldOnce(t *testing.T) {
	tr := New()

	tr.Record("subject")
	tr.Record("subject")
	tr.Record("location")

	require.True(t, tr.Dirty())
	assert.Equal(t, []string{"location", "subject"}, tr.Fields())
	assert.True(t, tr.Has("subject"))
	assert.False(t, tr.Has("start"))
}

func TestTracker_SuspendDisablesRecording(t *testing.T) {
	tr := New()

	tr.Suspend(func() {
		tr.Record("subject")
		tr.Record("start")
	})

	assert.False(t, tr.Dirty())

	// Tracking resumes after the bulk load.
	tr.Record("location")
	assert.Equal(t, []string{"location"}, tr.Fields())
}

func TestTracker_SuspendReenablesOnPanic(t *testing.T) {
	tr := New()

	func() {
		defer func() { _ = recover() }()
		tr.Suspend(func() { panic("boom") })
	}()

	tr.Record("subject")
	assert.True(t, tr.Has("subject"))
}

func TestTracker_ResetClearsDirtySet(t *testing.T) {
	tr := New()
	tr.Record("subject")

	tr.Reset()

	assert.False(t, tr.Dirty())
	assert.Empty(t, tr.Fields())
}
