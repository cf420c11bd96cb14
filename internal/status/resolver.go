package status

import (
	"bersekolah/gateway/internal/models"
)

// Resolved is the UI-facing view of an application record: the interview
// phase plus display fields derived from it. Resolve is a pure function of
// the record; handlers may cache or refetch freely.
type Resolved struct {
	Phase        models.InterviewPhase    `json:"phase"`
	Status       models.ApplicationStatus `json:"status"`
	Finalized    bool                     `json:"finalized"`
	Schedule     *Schedule                `json:"schedule,omitempty"`
	CatatanAdmin string                   `json:"catatan_admin,omitempty"`
}

// Resolve maps a raw status record to an interview phase. The ordering of
// the rules is part of the contract:
//
//  1. not finalized yet -> waiting, whatever the status says
//  2. lolos_berkas with a complete slot (date, time, link) -> scheduled;
//     without one -> waiting for the admin to assign it
//  3. lolos_wawancara or diterima -> completed
//  4. ditolak -> canceled
//  5. anything unknown -> waiting, the conservative default
func Resolve(record models.ApplicationRecord) Resolved {
	resolved := Resolved{
		Status:       record.Status,
		Finalized:    record.FinalizedAt != "",
		CatatanAdmin: record.CatatanAdmin,
	}

	switch {
	case record.FinalizedAt == "":
		resolved.Phase = models.PhaseWaiting

	case record.Status == models.StatusLolosBerkas:
		if record.InterviewDate != "" && record.InterviewTime != "" && record.InterviewLink != "" {
			resolved.Phase = models.PhaseScheduled
			schedule := ComposeSchedule(record.InterviewDate, record.InterviewTime, record.InterviewLink)
			resolved.Schedule = &schedule
		} else {
			resolved.Phase = models.PhaseWaiting
		}

	case record.Status == models.StatusLolosWawancara || record.Status == models.StatusDiterima:
		resolved.Phase = models.PhaseCompleted

	case record.Status == models.StatusDitolak:
		resolved.Phase = models.PhaseCanceled

	default:
		resolved.Phase = models.PhaseWaiting
	}

	return resolved
}

// LockReason explains why the interview page is not accessible.
type LockReason string

const (
	LockNone         LockReason = ""
	LockNotFinalized LockReason = "not_finalized"
	LockStillPending LockReason = "still_pending"
	LockRejected     LockReason = "rejected"
	LockUnknown      LockReason = "unknown_status"
)

// InterviewAccess gates the interview-schedule page: allowed only once the
// application is finalized and the status has passed berkas review.
func InterviewAccess(record models.ApplicationRecord) LockReason {
	if record.FinalizedAt == "" {
		return LockNotFinalized
	}

	switch record.Status {
	case models.StatusLolosBerkas, models.StatusLolosWawancara, models.StatusDiterima:
		return LockNone
	case models.StatusPending:
		return LockStillPending
	case models.StatusDitolak:
		return LockRejected
	default:
		return LockUnknown
	}
}
