package types

import "time"

// VisitStatus represents visit lifecycle status values
type VisitStatus string

const (
	StatusProgramada VisitStatus = "programada"
	StatusRealizada  VisitStatus = "realizada"
	StatusCompletada VisitStatus = "completada"
	StatusCancelada  VisitStatus = "cancelada"
)

// FilterResultadosListos is a list-filter value, not a persisted visit
// status: it selects visits in "realizada" whose attached exams all carry
// results. See visit.ResultsReady.
const FilterResultadosListos VisitStatus = "resultados_listos"

// Visit represents one scheduled medical encounter ("cita")
type Visit struct {
	ID              string      `json:"id"`
	PatientID       string      `json:"paciente_id"`
	PatientName     string      `json:"paciente_nombre,omitempty"`
	RequestID       string      `json:"solicitud_id"`
	SpecialistID    string      `json:"especialista_id,omitempty"`
	NurseID         string      `json:"enfermero_id,omitempty"`
	ScheduledAt     time.Time   `json:"fecha_programada"`
	Location        string      `json:"lugar"`
	Status          VisitStatus `json:"estado"`
	Diagnosis       string      `json:"diagnostico,omitempty"`
	Observations    string      `json:"observaciones,omitempty"`
	NextAppointment *time.Time  `json:"proxima_cita,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// IsTerminal reports whether the visit can no longer be mutated
func (v *Visit) IsTerminal() bool {
	return v.Status == StatusCompletada || v.Status == StatusCancelada
}

// VisitUpdate represents the single PUT payload for a visit
type VisitUpdate struct {
	Status          *VisitStatus `json:"estado,omitempty"`
	Diagnosis       *string      `json:"diagnostico,omitempty"`
	Observations    *string      `json:"observaciones,omitempty"`
	NextAppointment *time.Time   `json:"proxima_cita,omitempty"`
}

// ExamOrder attaches a catalog exam to a visit
type ExamOrder struct {
	ID         string     `json:"id"`
	VisitID    string     `json:"visita_id"`
	ExamID     string     `json:"examen_id"`
	ExamName   string     `json:"examen_nombre,omitempty"`
	Result     string     `json:"resultado,omitempty"`
	RealizedAt *time.Time `json:"fecha_realizado,omitempty"`
}

// HasResult reports whether the lab has recorded a result for the order
func (o *ExamOrder) HasResult() bool {
	return o.Result != ""
}

// MedicationPrescription attaches a catalog medication to a visit
type MedicationPrescription struct {
	ID             string     `json:"id"`
	VisitID        string     `json:"visita_id"`
	MedicationID   string     `json:"medicamento_id"`
	MedicationName string     `json:"medicamento_nombre,omitempty"`
	Quantity       string     `json:"cantidad"`
	Instructions   string     `json:"indicaciones"`
	Delivered      bool       `json:"entregado"`
	DeliveredAt    *time.Time `json:"fecha_entrega,omitempty"`
}

// RequestStatus represents referral request status values
type RequestStatus string

const (
	RequestPendiente  RequestStatus = "pendiente"
	RequestAprobada   RequestStatus = "aprobada"
	RequestProgramada RequestStatus = "programada"
	RequestCancelada  RequestStatus = "cancelada"
)

// Request represents the originating referral ("solicitud") from a general
// practitioner to a specialist; a visit fulfills it once scheduled.
type Request struct {
	ID        string        `json:"id"`
	PatientID string        `json:"paciente_id"`
	DoctorID  string        `json:"medico_id"`
	Motive    string        `json:"motivo"`
	Status    RequestStatus `json:"estado"`
	NurseID   string        `json:"enfermero_id,omitempty"`
	Specialty string        `json:"especialidad,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
