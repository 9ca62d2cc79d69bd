package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// MockHistoryAPI is a mock implementation of HistoryAPI
type MockHistoryAPI struct {
	mock.Mock
}

func (m *MockHistoryAPI) GetPatientHistory(ctx context.Context, patientID string) (*types.PatientHistory, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PatientHistory), args.Error(1)
}

func setupTestViewer() (*Viewer, *MockHistoryAPI) {
	mockAPI := &MockHistoryAPI{}
	return New(mockAPI, logger.New("debug")), mockAPI
}

func TestLoadHistory_Success(t *testing.T) {
	viewer, mockAPI := setupTestViewer()
	projection := &types.PatientHistory{
		PatientID: "pac-1",
		Visits: []*types.VisitSummary{
			{ID: "vis-1", Diagnosis: "Hipertension controlada", Status: types.StatusCompletada},
		},
		BaseConditions: []*types.BaseCondition{
			{
				Condition:   "Diabetes tipo 2",
				DiagnosedAt: time.Date(2019, 5, 3, 0, 0, 0, 0, time.UTC),
				FixedTreatments: []*types.FixedTreatment{
					{ID: "trat-1", MedicationName: "Metformina 850mg", Dose: "1 tableta", IntervalDays: 30},
				},
			},
		},
	}
	mockAPI.On("GetPatientHistory", mock.Anything, "pac-1").Return(projection, nil)

	history, err := viewer.LoadHistory(context.Background(), "pac-1")

	assert.NoError(t, err)
	assert.Equal(t, projection, history)
	mockAPI.AssertExpectations(t)
}

func TestLoadHistory_EmptyRecordIsNotAnError(t *testing.T) {
	viewer, mockAPI := setupTestViewer()
	mockAPI.On("GetPatientHistory", mock.Anything, "pac-nuevo").
		Return(&types.PatientHistory{PatientID: "pac-nuevo"}, nil)

	history, err := viewer.LoadHistory(context.Background(), "pac-nuevo")

	assert.NoError(t, err)
	assert.NotNil(t, history.Visits)
	assert.Empty(t, history.Visits)
	assert.NotNil(t, history.BaseConditions)
	assert.Empty(t, history.BaseConditions)
}

func TestLoadHistory_NilTreatmentListNormalized(t *testing.T) {
	viewer, mockAPI := setupTestViewer()
	mockAPI.On("GetPatientHistory", mock.Anything, "pac-1").
		Return(&types.PatientHistory{
			PatientID:      "pac-1",
			BaseConditions: []*types.BaseCondition{{Condition: "Artritis"}},
		}, nil)

	history, err := viewer.LoadHistory(context.Background(), "pac-1")

	assert.NoError(t, err)
	assert.NotNil(t, history.BaseConditions[0].FixedTreatments)
	assert.Empty(t, history.BaseConditions[0].FixedTreatments)
}

func TestLoadHistory_NoPatientSelected(t *testing.T) {
	viewer, mockAPI := setupTestViewer()

	history, err := viewer.LoadHistory(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, history)
	assert.True(t, types.HasCode(err, types.ErrCodeInvalidSelection))
	mockAPI.AssertNotCalled(t, "GetPatientHistory", mock.Anything, mock.Anything)
}

func TestLoadHistory_FetchFailure(t *testing.T) {
	viewer, mockAPI := setupTestViewer()
	mockAPI.On("GetPatientHistory", mock.Anything, "pac-1").
		Return(nil, types.NewExternalError(types.ErrCodeServerError, "internal error", nil))

	history, err := viewer.LoadHistory(context.Background(), "pac-1")

	assert.Error(t, err)
	assert.Nil(t, history)
}
