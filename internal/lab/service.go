package lab

import (
	"context"
	"sync"
	"time"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/interfaces"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// Service records results for exams that are still awaiting one. Only
// exams with unset results appear in the pending queue.
type Service struct {
	api    interfaces.LabAPI
	logger *logger.Logger
	claims *types.UserClaims

	mu      sync.Mutex
	pending []*types.PendingExam
}

// New creates a new lab result workflow for the session
func New(api interfaces.LabAPI, claims *types.UserClaims, log *logger.Logger) *Service {
	return &Service{
		api:     api,
		claims:  claims,
		logger:  log,
		pending: []*types.PendingExam{},
	}
}

// ListPending loads the exams awaiting a result, joined with visit and
// patient context. On failure the previous list stays visible.
func (s *Service) ListPending(ctx context.Context) ([]*types.PendingExam, error) {
	pending, err := s.api.ListPendingExams(ctx)
	if err != nil {
		s.logger.WithComponent("lab").WithError(err).Error("Pending exam fetch failed, keeping previous list")
		s.mu.Lock()
		stale := s.pending
		s.mu.Unlock()
		return stale, err
	}

	if pending == nil {
		pending = []*types.PendingExam{}
	}

	s.mu.Lock()
	s.pending = pending
	s.mu.Unlock()

	return pending, nil
}

// SubmitResult records the result for a pending exam and removes it from
// the local pending list. Result text and realization datetime are both
// required; incomplete input never reaches the network.
func (s *Service) SubmitResult(ctx context.Context, visitID, examID, result string, realizedAt time.Time) error {
	if visitID == "" || examID == "" {
		return types.NewValidationError(types.ErrCodeInvalidSelection, "no pending exam selected", nil)
	}
	if result == "" || realizedAt.IsZero() {
		return types.NewValidationError(types.ErrCodeIncompleteInput, "result and realization datetime are required", nil)
	}

	payload := &types.LabResult{
		VisitID:    visitID,
		ExamID:     examID,
		Result:     result,
		RealizedAt: realizedAt,
	}
	if err := s.api.SubmitResult(ctx, payload); err != nil {
		return err
	}

	s.logger.Audit(s.claims.UserID, "submit_lab_result", "visita/"+visitID, true, map[string]interface{}{
		"examen_id": examID,
	})

	s.mu.Lock()
	kept := s.pending[:0]
	for _, exam := range s.pending {
		if exam.VisitID != visitID || exam.ExamID != examID {
			kept = append(kept, exam)
		}
	}
	s.pending = kept
	s.mu.Unlock()

	return nil
}

// DefaultRealizedAt is the form default for the realization datetime:
// now, in the caller's local timezone. A convenience, not a correctness
// constraint.
func DefaultRealizedAt() time.Time {
	return time.Now()
}
