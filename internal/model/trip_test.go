package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet-service/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to model.TripStatus
		want     bool
	}{
		{model.TripStatusDraft, model.TripStatusDispatched, true},
		{model.TripStatusDraft, model.TripStatusCancelled, true},
		{model.TripStatusDraft, model.TripStatusCompleted, false},
		{model.TripStatusDraft, model.TripStatusDraft, false},
		{model.TripStatusDispatched, model.TripStatusCompleted, true},
		{model.TripStatusDispatched, model.TripStatusCancelled, true},
		{model.TripStatusDispatched, model.TripStatusDraft, false},
		{model.TripStatusCompleted, model.TripStatusDraft, false},
		{model.TripStatusCompleted, model.TripStatusCancelled, false},
		{model.TripStatusCancelled, model.TripStatusDispatched, false},
		{model.TripStatusCancelled, model.TripStatusCompleted, false},
	}

	for _, tc := range cases {
		got := model.CanTransition(tc.from, tc.to)
		assert.Equalf(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, model.CanTransition(model.TripStatus("Archived"), model.TripStatusDraft))
	assert.False(t, model.CanTransition(model.TripStatusDraft, model.TripStatus("Archived")))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, model.TripStatusDraft.IsTerminal())
	assert.False(t, model.TripStatusDispatched.IsTerminal())
	assert.True(t, model.TripStatusCompleted.IsTerminal())
	assert.True(t, model.TripStatusCancelled.IsTerminal())

	// An unknown status is not terminal, it is invalid.
	assert.False(t, model.TripStatus("Archived").IsTerminal())
}

func TestAllowedTargets(t *testing.T) {
	assert.ElementsMatch(t,
		[]model.TripStatus{model.TripStatusDispatched, model.TripStatusCancelled},
		model.AllowedTargets(model.TripStatusDraft))
	assert.ElementsMatch(t,
		[]model.TripStatus{model.TripStatusCompleted, model.TripStatusCancelled},
		model.AllowedTargets(model.TripStatusDispatched))
	assert.Empty(t, model.AllowedTargets(model.TripStatusCompleted))
	assert.Empty(t, model.AllowedTargets(model.TripStatusCancelled))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, model.TripStatusDraft.Valid())
	assert.False(t, model.TripStatus("draft").Valid())
	assert.True(t, model.VehicleStatusOnTrip.Valid())
	assert.False(t, model.VehicleStatus("Parked").Valid())
	assert.True(t, model.DriverStatusSuspended.Valid())
	assert.False(t, model.DriverStatus("Sleeping").Valid())
}
