package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/config"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.APIConfig{BaseURL: server.URL, TimeoutSeconds: 5}
	client := NewClient(cfg, func() string { return "test-token" }, logger.New("debug"), opts...)
	return client, server
}

func TestDo_SetsAuthAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]*types.Visit{})
	})

	_, err := client.ListVisits(context.Background(), "")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestListVisits_StatusFilterInQuery(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("estado")
		_ = json.NewEncoder(w).Encode([]*types.Visit{
			{ID: "vis-1", Status: types.StatusProgramada},
		})
	})

	visits, err := client.ListVisits(context.Background(), types.StatusProgramada)

	assert.NoError(t, err)
	assert.Equal(t, "/visitas", gotPath)
	assert.Equal(t, "programada", gotQuery)
	assert.Len(t, visits, 1)
	assert.Equal(t, "vis-1", visits[0].ID)
}

func TestListMyVisits_UsesOwnVisitsRoute(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]*types.Visit{})
	})

	_, err := client.ListMyVisits(context.Background(), types.StatusRealizada)

	assert.NoError(t, err)
	assert.Equal(t, "/visitas/mis-citas", gotPath)
}

func TestUpdateVisit_SendsSinglePut(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	status := types.StatusRealizada
	diagnosis := "Hipertension controlada"
	err := client.UpdateVisit(context.Background(), "vis-1", &types.VisitUpdate{
		Status:    &status,
		Diagnosis: &diagnosis,
	})

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/visitas/vis-1", gotPath)
	assert.Equal(t, "realizada", gotBody["estado"])
	assert.Equal(t, "Hipertension controlada", gotBody["diagnostico"])
	assert.NotContains(t, gotBody, "observaciones", "unset fields are omitted")
}

func TestAddVisitExam_WrapsExamID(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.AddVisitExam(context.Background(), "vis-1", "ex-1")

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"examen_id": "ex-1"}, gotBody)
}

func TestUnauthorized_FiresSessionExpiredHandler(t *testing.T) {
	expired := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, WithSessionExpiredHandler(func() { expired = true }))

	_, err := client.ListVisits(context.Background(), "")

	assert.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrCodeSessionExpired))
	assert.True(t, expired)
}

func TestServerError_UsesMensajeFromBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "error interno del servidor"})
	})

	_, err := client.ListVisits(context.Background(), "")

	assert.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrCodeServerError))
	var portalErr *types.PortalError
	assert.ErrorAs(t, err, &portalErr)
	assert.Equal(t, "error interno del servidor", portalErr.Message)
}

func TestNotFound_MapsToNotFoundCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "{}", http.StatusNotFound)
	})

	_, err := client.GetRequest(context.Background(), "sol-missing")

	assert.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrCodeNotFound))
}

func TestConflict_MapsToAlreadyDelivered(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "el medicamento ya fue entregado"})
	})

	err := client.ConfirmVisitDelivery(context.Background(), "vis-1", "med-1")

	assert.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrCodeAlreadyDelivered))
	var portalErr *types.PortalError
	assert.ErrorAs(t, err, &portalErr)
	assert.Equal(t, types.ErrorTypeConflict, portalErr.Type)
}

func TestNetworkFailure_MapsToNetworkCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	cfg := &config.APIConfig{BaseURL: server.URL, TimeoutSeconds: 1}
	client := NewClient(cfg, func() string { return "test-token" }, logger.New("debug"))

	_, err := client.ListVisits(context.Background(), "")

	assert.Error(t, err)
	assert.True(t, types.HasCode(err, types.ErrCodeNetworkFailure))
}

func TestDispenseFixedTreatment_Payload(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := client.DispenseFixedTreatment(context.Background(), "trat-1", "30 tabletas")

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/farmacia/entregar-fijo", gotPath)
	assert.Equal(t, "trat-1", gotBody["tratamiento_id"])
	assert.Equal(t, "30 tabletas", gotBody["cantidad_entregada"])
}

func TestCreateMedicationCharge_PostsChargeRecord(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateMedicationCharge(context.Background(), &types.MedicationCharge{
		ID:          "cobro-1",
		TreatmentID: "trat-1",
		Amount:      150.00,
	})

	assert.NoError(t, err)
	assert.Equal(t, "/cobros-medicamentos", gotPath)
	assert.Equal(t, "cobro-1", gotBody["id"])
	assert.Equal(t, 150.00, gotBody["monto"])
}

func TestGetPatientHistory_RouteAndDecode(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(&types.PatientHistory{
			PatientID: "pac-1",
			Visits:    []*types.VisitSummary{{ID: "vis-1", Status: types.StatusCompletada}},
		})
	})

	history, err := client.GetPatientHistory(context.Background(), "pac-1")

	assert.NoError(t, err)
	assert.Equal(t, "/pacientes/pac-1/historial", gotPath)
	assert.Equal(t, "pac-1", history.PatientID)
	assert.Len(t, history.Visits, 1)
}
