package pharmacy

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/interfaces"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// Service drives the two pharmacy sub-flows: marking visit-scoped
// prescriptions delivered, and dispensing fixed treatments with the billing
// charge that follows.
type Service struct {
	api    interfaces.PharmacyAPI
	logger *logger.Logger
	claims *types.UserClaims

	mu           sync.Mutex
	visitPending []*types.PendingDelivery
	fixedPending []*types.FixedTreatment
	delivered    map[string]bool
}

// New creates a new pharmacy dispense workflow for the session
func New(api interfaces.PharmacyAPI, claims *types.UserClaims, log *logger.Logger) *Service {
	return &Service{
		api:          api,
		claims:       claims,
		logger:       log,
		visitPending: []*types.PendingDelivery{},
		fixedPending: []*types.FixedTreatment{},
		delivered:    make(map[string]bool),
	}
}

// ListPendingDeliveries loads the visit-scoped prescriptions awaiting
// delivery. On failure the previous list stays visible.
func (s *Service) ListPendingDeliveries(ctx context.Context) ([]*types.PendingDelivery, error) {
	pending, err := s.api.ListPendingVisitDeliveries(ctx)
	if err != nil {
		s.logger.WithComponent("pharmacy").WithError(err).Error("Pending delivery fetch failed, keeping previous list")
		s.mu.Lock()
		stale := s.visitPending
		s.mu.Unlock()
		return stale, err
	}

	if pending == nil {
		pending = []*types.PendingDelivery{}
	}

	s.mu.Lock()
	s.visitPending = pending
	s.mu.Unlock()

	return pending, nil
}

// ConfirmDelivery marks one visit-scoped prescription delivered. Calling it
// again for the same (visit, medication) pair fails with an
// already-delivered conflict: the repeat is rejected, not silently
// no-opped, whether the duplicate is caught locally or by the API.
func (s *Service) ConfirmDelivery(ctx context.Context, visitID, medicationID string) error {
	if visitID == "" || medicationID == "" {
		return types.NewValidationError(types.ErrCodeInvalidSelection, "no prescription selected", nil)
	}

	key := visitID + "/" + medicationID

	s.mu.Lock()
	alreadyDelivered := s.delivered[key]
	s.mu.Unlock()
	if alreadyDelivered {
		return alreadyDeliveredError(visitID, medicationID)
	}

	if err := s.api.ConfirmVisitDelivery(ctx, visitID, medicationID); err != nil {
		var pe *types.PortalError
		if errors.As(err, &pe) && pe.Type == types.ErrorTypeConflict {
			// The API already has this delivery; remember that locally
			s.mu.Lock()
			s.delivered[key] = true
			s.mu.Unlock()
			return alreadyDeliveredError(visitID, medicationID)
		}
		return err
	}

	s.logger.Audit(s.claims.UserID, "confirm_delivery", "visita/"+visitID, true, map[string]interface{}{
		"medicamento_id": medicationID,
	})

	s.mu.Lock()
	s.delivered[key] = true
	kept := s.visitPending[:0]
	for _, d := range s.visitPending {
		if d.VisitID != visitID || d.MedicationID != medicationID {
			kept = append(kept, d)
		}
	}
	s.visitPending = kept
	s.mu.Unlock()

	return nil
}

// ListPendingFixed loads the fixed treatments due for dispensing
func (s *Service) ListPendingFixed(ctx context.Context) ([]*types.FixedTreatment, error) {
	pending, err := s.api.ListPendingFixedTreatments(ctx)
	if err != nil {
		s.logger.WithComponent("pharmacy").WithError(err).Error("Fixed treatment fetch failed, keeping previous list")
		s.mu.Lock()
		stale := s.fixedPending
		s.mu.Unlock()
		return stale, err
	}

	if pending == nil {
		pending = []*types.FixedTreatment{}
	}

	s.mu.Lock()
	s.fixedPending = pending
	s.mu.Unlock()

	return pending, nil
}

// DispenseFixed dispenses a fixed treatment and records the billing charge.
// The two API calls are not atomic; when the dispense succeeds but the
// charge fails, the receipt reports Billed=false and the error carries the
// billing-incomplete code so the inconsistency is surfaced, never
// swallowed.
func (s *Service) DispenseFixed(ctx context.Context, treatmentID, quantityDispensed string, totalCost float64) (*types.DispenseReceipt, error) {
	if treatmentID == "" || quantityDispensed == "" {
		return nil, types.NewValidationError(types.ErrCodeIncompleteInput, "treatment and quantity are required", nil)
	}
	if totalCost <= 0 {
		return nil, types.NewValidationError(types.ErrCodeIncompleteInput, "total cost is required", nil)
	}

	if err := s.api.DispenseFixedTreatment(ctx, treatmentID, quantityDispensed); err != nil {
		return nil, err
	}

	charge := &types.MedicationCharge{
		ID:                uuid.New().String(),
		TreatmentID:       treatmentID,
		QuantityDispensed: quantityDispensed,
		Amount:            totalCost,
		DispensedAt:       time.Now(),
	}

	if err := s.api.CreateMedicationCharge(ctx, charge); err != nil {
		s.logger.Audit(s.claims.UserID, "dispense_fixed", "tratamiento/"+treatmentID, false, map[string]interface{}{
			"cobro_id": charge.ID,
			"monto":    totalCost,
		})
		receipt := &types.DispenseReceipt{TreatmentID: treatmentID, Billed: false}
		return receipt, &types.PortalError{
			Type:    types.ErrorTypeConflict,
			Code:    types.ErrCodeBillingIncomplete,
			Message: "treatment dispensed but the charge was not recorded",
			Details: map[string]interface{}{
				"tratamiento_id": treatmentID,
				"cobro_id":       charge.ID,
				"monto":          totalCost,
			},
			Cause: err,
		}
	}

	s.logger.Audit(s.claims.UserID, "dispense_fixed", "tratamiento/"+treatmentID, true, map[string]interface{}{
		"cobro_id": charge.ID,
		"monto":    totalCost,
	})

	s.mu.Lock()
	kept := s.fixedPending[:0]
	for _, t := range s.fixedPending {
		if t.ID != treatmentID {
			kept = append(kept, t)
		}
	}
	s.fixedPending = kept
	s.mu.Unlock()

	return &types.DispenseReceipt{
		TreatmentID: treatmentID,
		ChargeID:    charge.ID,
		Billed:      true,
	}, nil
}

func alreadyDeliveredError(visitID, medicationID string) error {
	return types.NewConflictError(types.ErrCodeAlreadyDelivered,
		"prescription was already delivered",
		map[string]interface{}{
			"visita_id":      visitID,
			"medicamento_id": medicationID,
		})
}
