package interfaces

import (
	"context"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// VisitAPI defines the remote endpoints for visits and their sub-resources
type VisitAPI interface {
	// Visit lists, role-scoped at the endpoint level
	ListVisits(ctx context.Context, status types.VisitStatus) ([]*types.Visit, error)
	ListMyVisits(ctx context.Context, status types.VisitStatus) ([]*types.Visit, error)

	// Visit update (status, diagnosis, observations, next appointment)
	UpdateVisit(ctx context.Context, visitID string, update *types.VisitUpdate) error

	// Exam orders owned by a visit
	GetVisitExams(ctx context.Context, visitID string) ([]*types.ExamOrder, error)
	AddVisitExam(ctx context.Context, visitID, examID string) error
	RemoveVisitExam(ctx context.Context, visitID, examID string) error

	// Medication prescriptions owned by a visit
	GetVisitMedications(ctx context.Context, visitID string) ([]*types.MedicationPrescription, error)
	AddVisitMedication(ctx context.Context, visitID string, prescription *types.MedicationPrescription) error
	RemoveVisitMedication(ctx context.Context, visitID, medicationID string) error

	// Originating referral context
	GetRequest(ctx context.Context, requestID string) (*types.Request, error)
}

// CatalogAPI defines the read-only reference data endpoints
type CatalogAPI interface {
	ListExams(ctx context.Context) ([]*types.Exam, error)
	ListMedications(ctx context.Context) ([]*types.Medication, error)
	ListNurses(ctx context.Context) ([]*types.Nurse, error)
	ListDoctors(ctx context.Context) ([]*types.Doctor, error)
}

// LabAPI defines the laboratory result endpoints
type LabAPI interface {
	ListPendingExams(ctx context.Context) ([]*types.PendingExam, error)
	SubmitResult(ctx context.Context, result *types.LabResult) error
}

// PharmacyAPI defines the pharmacy dispensing and billing endpoints
type PharmacyAPI interface {
	ListPendingVisitDeliveries(ctx context.Context) ([]*types.PendingDelivery, error)
	ConfirmVisitDelivery(ctx context.Context, visitID, medicationID string) error
	ListPendingFixedTreatments(ctx context.Context) ([]*types.FixedTreatment, error)
	DispenseFixedTreatment(ctx context.Context, treatmentID, quantity string) error
	CreateMedicationCharge(ctx context.Context, charge *types.MedicationCharge) error
}

// HistoryAPI defines the patient history aggregation endpoint
type HistoryAPI interface {
	GetPatientHistory(ctx context.Context, patientID string) (*types.PatientHistory, error)
}
