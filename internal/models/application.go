package models

// ApplicationStatus values as delivered by the core API. The set is owned
// upstream; anything outside it is treated conservatively as still pending.
type ApplicationStatus string

const (
	StatusPending        ApplicationStatus = "pending"
	StatusLolosBerkas    ApplicationStatus = "lolos_berkas"
	StatusLolosWawancara ApplicationStatus = "lolos_wawancara"
	StatusDiterima       ApplicationStatus = "diterima"
	StatusDitolak        ApplicationStatus = "ditolak"
)

// ApplicationRecord is the raw status record fetched from the core API.
// Optional fields stay as strings; parsing and time-zone handling happen in
// the status resolver.
type ApplicationRecord struct {
	Status        ApplicationStatus `json:"status"`
	FinalizedAt   string            `json:"finalized_at"`
	InterviewDate string            `json:"interview_date"`
	InterviewTime string            `json:"interview_time"`
	InterviewLink string            `json:"interview_link"`
	CatatanAdmin  string            `json:"catatan_admin"`
}

type InterviewPhase string

const (
	PhaseWaiting   InterviewPhase = "waiting"
	PhaseScheduled InterviewPhase = "scheduled"
	PhaseCompleted InterviewPhase = "completed"
	PhaseCanceled  InterviewPhase = "canceled"
)
