package types

import "time"

// PendingExam is an exam order joined with visit and patient context,
// as served by the laboratory pending queue.
type PendingExam struct {
	VisitID     string    `json:"visita_id"`
	ExamID      string    `json:"examen_id"`
	ExamName    string    `json:"examen_nombre"`
	PatientID   string    `json:"paciente_id"`
	PatientName string    `json:"paciente_nombre"`
	ScheduledAt time.Time `json:"fecha_programada"`
}

// LabResult is the payload recorded by the laboratory for a pending exam
type LabResult struct {
	VisitID    string    `json:"visita_id"`
	ExamID     string    `json:"examen_id"`
	Result     string    `json:"resultado"`
	RealizedAt time.Time `json:"fecha_realizado"`
}
