package types

import "time"

// PendingDelivery is a visit-scoped prescription awaiting pharmacy delivery,
// joined with patient context for the dispensing queue.
type PendingDelivery struct {
	VisitID        string `json:"visita_id"`
	MedicationID   string `json:"medicamento_id"`
	MedicationName string `json:"medicamento_nombre"`
	PatientID      string `json:"paciente_id"`
	PatientName    string `json:"paciente_nombre"`
	Quantity       string `json:"cantidad"`
	Instructions   string `json:"indicaciones"`
}

// FixedTreatment is a recurring medication plan tied to a patient's baseline
// condition, independent of any single visit.
type FixedTreatment struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"paciente_id"`
	PatientName    string    `json:"paciente_nombre,omitempty"`
	Condition      string    `json:"padecimiento,omitempty"`
	MedicationID   string    `json:"medicamento_id"`
	MedicationName string    `json:"medicamento_nombre,omitempty"`
	Dose           string    `json:"dosis"`
	IntervalDays   int       `json:"intervalo_dias"`
	StartedAt      time.Time  `json:"fecha_inicio"`
	LastDispensed  *time.Time `json:"ultima_entrega,omitempty"`
}

// MedicationCharge is the billing record created when a fixed treatment
// is dispensed.
type MedicationCharge struct {
	ID                string    `json:"id"`
	TreatmentID       string    `json:"tratamiento_id"`
	QuantityDispensed string    `json:"cantidad_entregada"`
	Amount            float64   `json:"monto"`
	DispensedAt       time.Time `json:"fecha_entrega"`
}

// DispenseReceipt summarizes the outcome of a fixed-treatment dispense.
// Billed is false when the dispense call succeeded but the charge call did
// not; callers must surface that state, never swallow it.
type DispenseReceipt struct {
	TreatmentID string `json:"tratamiento_id"`
	ChargeID    string `json:"cobro_id,omitempty"`
	Billed      bool   `json:"facturado"`
}
