package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bersekolah/gateway/internal/models"
)

func TestResolve_NotFinalizedIsWaiting(t *testing.T) {
	resolved := Resolve(models.ApplicationRecord{Status: models.StatusPending})

	assert.Equal(t, models.PhaseWaiting, resolved.Phase)
	assert.False(t, resolved.Finalized)
	assert.Nil(t, resolved.Schedule)
}

func TestResolve_LolosBerkasWithFullSlotIsScheduled(t *testing.T) {
	resolved := Resolve(models.ApplicationRecord{
		Status:        models.StatusLolosBerkas,
		FinalizedAt:   "2025-01-01",
		InterviewDate: "2025-02-01",
		InterviewTime: "10:00:00",
		InterviewLink: "https://x",
	})

	assert.Equal(t, models.PhaseScheduled, resolved.Phase)
	require.NotNil(t, resolved.Schedule)
	assert.True(t, resolved.Schedule.Valid)
	assert.Equal(t, "10:00 WIB", resolved.Schedule.DisplayStart)
	assert.Equal(t, "11:00 WIB", resolved.Schedule.DisplayEnd)
}

func TestResolve_LolosBerkasWithoutSlotIsWaiting(t *testing.T) {
	resolved := Resolve(models.ApplicationRecord{
		Status:      models.StatusLolosBerkas,
		FinalizedAt: "2025-01-01",
	})

	assert.Equal(t, models.PhaseWaiting, resolved.Phase)
	assert.Nil(t, resolved.Schedule)
}

func TestResolve_PartialSlotIsStillWaiting(t *testing.T) {
	resolved := Resolve(models.ApplicationRecord{
		Status:        models.StatusLolosBerkas,
		FinalizedAt:   "2025-01-01",
		InterviewDate: "2025-02-01",
		InterviewTime: "10:00",
		// link not assigned yet
	})

	assert.Equal(t, models.PhaseWaiting, resolved.Phase)
}

func TestResolve_CompletedPhases(t *testing.T) {
	for _, s := range []models.ApplicationStatus{models.StatusLolosWawancara, models.StatusDiterima} {
		t.Run(string(s), func(t *testing.T) {
			resolved := Resolve(models.ApplicationRecord{Status: s, FinalizedAt: "2025-01-01"})
			assert.Equal(t, models.PhaseCompleted, resolved.Phase)
		})
	}
}

func TestResolve_DitolakIsCanceled(t *testing.T) {
	resolved := Resolve(models.ApplicationRecord{Status: models.StatusDitolak, FinalizedAt: "2025-01-01"})
	assert.Equal(t, models.PhaseCanceled, resolved.Phase)
}

func TestResolve_DitolakWithoutFinalizationIsWaiting(t *testing.T) {
	// Rule ordering: finalization is checked first, so an unfinalized
	// rejection still reads as waiting.
	resolved := Resolve(models.ApplicationRecord{Status: models.StatusDitolak})
	assert.Equal(t, models.PhaseWaiting, resolved.Phase)
}

func TestResolve_UnknownStatusIsWaiting(t *testing.T) {
	resolved := Resolve(models.ApplicationRecord{
		Status:      models.ApplicationStatus("something_new"),
		FinalizedAt: "2025-01-01",
	})
	assert.Equal(t, models.PhaseWaiting, resolved.Phase)
}

func TestInterviewAccess(t *testing.T) {
	cases := []struct {
		name   string
		record models.ApplicationRecord
		want   LockReason
	}{
		{"not finalized", models.ApplicationRecord{Status: models.StatusLolosBerkas}, LockNotFinalized},
		{"still pending", models.ApplicationRecord{Status: models.StatusPending, FinalizedAt: "2025-01-01"}, LockStillPending},
		{"rejected", models.ApplicationRecord{Status: models.StatusDitolak, FinalizedAt: "2025-01-01"}, LockRejected},
		{"unknown", models.ApplicationRecord{Status: "odd", FinalizedAt: "2025-01-01"}, LockUnknown},
		{"lolos berkas", models.ApplicationRecord{Status: models.StatusLolosBerkas, FinalizedAt: "2025-01-01"}, LockNone},
		{"lolos wawancara", models.ApplicationRecord{Status: models.StatusLolosWawancara, FinalizedAt: "2025-01-01"}, LockNone},
		{"diterima", models.ApplicationRecord{Status: models.StatusDiterima, FinalizedAt: "2025-01-01"}, LockNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InterviewAccess(tc.record))
		})
	}
}
