package interfaces

import (
	"context"
	"time"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// ClaimsReader decodes bearer tokens into user claims without a network call
type ClaimsReader interface {
	ParseToken(token string) (*types.UserClaims, error)
}

// CatalogLoader loads the reference lists used to populate pickers
type CatalogLoader interface {
	LoadCatalogs(ctx context.Context) *types.Catalogs
	Reset()
}

// VisitRegistry serves the role-scoped, status-filtered visit list
type VisitRegistry interface {
	ListVisits(ctx context.Context, claims *types.UserClaims, status types.VisitStatus) []*types.Visit
	Reload(ctx context.Context) []*types.Visit
}

// LabWorkflow records results for exams awaiting them
type LabWorkflow interface {
	ListPending(ctx context.Context) ([]*types.PendingExam, error)
	SubmitResult(ctx context.Context, visitID, examID, result string, realizedAt time.Time) error
}

// PharmacyWorkflow marks medications delivered and bills fixed treatments
type PharmacyWorkflow interface {
	ListPendingDeliveries(ctx context.Context) ([]*types.PendingDelivery, error)
	ConfirmDelivery(ctx context.Context, visitID, medicationID string) error
	ListPendingFixed(ctx context.Context) ([]*types.FixedTreatment, error)
	DispenseFixed(ctx context.Context, treatmentID, quantityDispensed string, totalCost float64) (*types.DispenseReceipt, error)
}

// HistoryViewer is the read-only projection over a patient's record
type HistoryViewer interface {
	LoadHistory(ctx context.Context, patientID string) (*types.PatientHistory, error)
}
