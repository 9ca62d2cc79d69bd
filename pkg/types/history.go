package types

import "time"

// VisitSummary is the condensed view of a past visit in a patient's history
type VisitSummary struct {
	ID             string      `json:"id"`
	ScheduledAt    time.Time   `json:"fecha_programada"`
	SpecialistName string      `json:"especialista_nombre,omitempty"`
	Diagnosis      string      `json:"diagnostico,omitempty"`
	Status         VisitStatus `json:"estado"`
}

// BaseCondition is a baseline diagnosis in a patient's record together with
// the fixed treatments prescribed for it.
type BaseCondition struct {
	Condition       string            `json:"padecimiento"`
	DiagnosedAt     time.Time         `json:"fecha_diagnostico"`
	FixedTreatments []*FixedTreatment `json:"tratamientos_fijos"`
}

// PatientHistory aggregates a patient's past visits and baseline conditions
type PatientHistory struct {
	PatientID      string           `json:"paciente_id"`
	Visits         []*VisitSummary  `json:"visitas"`
	BaseConditions []*BaseCondition `json:"padecimientos"`
}
