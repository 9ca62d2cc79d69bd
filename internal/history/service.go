package history

import (
	"context"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/interfaces"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// Viewer is the read-only aggregation of a patient's past visits and
// baseline conditions. No mutations pass through here.
type Viewer struct {
	api    interfaces.HistoryAPI
	logger *logger.Logger
}

// New creates a new patient history viewer
func New(api interfaces.HistoryAPI, log *logger.Logger) *Viewer {
	return &Viewer{
		api:    api,
		logger: log,
	}
}

// LoadHistory fetches the history projection for a patient. Empty
// collections are valid "none" states, never errors.
func (v *Viewer) LoadHistory(ctx context.Context, patientID string) (*types.PatientHistory, error) {
	if patientID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidSelection, "no patient selected", nil)
	}

	history, err := v.api.GetPatientHistory(ctx, patientID)
	if err != nil {
		v.logger.WithComponent("history").WithError(err).Error("History fetch failed")
		return nil, err
	}

	if history.Visits == nil {
		history.Visits = []*types.VisitSummary{}
	}
	if history.BaseConditions == nil {
		history.BaseConditions = []*types.BaseCondition{}
	}
	for _, condition := range history.BaseConditions {
		if condition.FixedTreatments == nil {
			condition.FixedTreatments = []*types.FixedTreatment{}
		}
	}

	return history, nil
}
