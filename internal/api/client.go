package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/config"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// TokenSource supplies the current bearer token for outgoing requests.
// Session storage is an external collaborator; the client only reads it.
type TokenSource func() string

// Client talks to the asilo REST API. It implements the VisitAPI,
// CatalogAPI, LabAPI, PharmacyAPI and HistoryAPI interfaces.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokenSource      TokenSource
	onSessionExpired func()
	logger           *logger.Logger
}

// Option configures optional client behavior
type Option func(*Client)

// WithSessionExpiredHandler registers the callback invoked whenever the API
// answers with a 401; the route guard uses it to drop back to the
// unauthenticated state.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) {
		c.onSessionExpired = fn
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new API client
func NewClient(cfg *config.APIConfig, tokenSource TokenSource, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     cfg.BaseURL,
		tokenSource: tokenSource,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListVisits retrieves all visits matching the status filter
func (c *Client) ListVisits(ctx context.Context, status types.VisitStatus) ([]*types.Visit, error) {
	var visits []*types.Visit
	if err := c.do(ctx, http.MethodGet, "/visitas"+statusQuery(status), nil, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// ListMyVisits retrieves the caller's own visits matching the status filter
func (c *Client) ListMyVisits(ctx context.Context, status types.VisitStatus) ([]*types.Visit, error) {
	var visits []*types.Visit
	if err := c.do(ctx, http.MethodGet, "/visitas/mis-citas"+statusQuery(status), nil, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// UpdateVisit submits the single PUT carrying status, diagnosis,
// observations and next appointment
func (c *Client) UpdateVisit(ctx context.Context, visitID string, update *types.VisitUpdate) error {
	return c.do(ctx, http.MethodPut, "/visitas/"+url.PathEscape(visitID), update, nil)
}

// GetVisitExams retrieves the exam orders owned by a visit
func (c *Client) GetVisitExams(ctx context.Context, visitID string) ([]*types.ExamOrder, error) {
	var orders []*types.ExamOrder
	if err := c.do(ctx, http.MethodGet, "/visitas/"+url.PathEscape(visitID)+"/examenes", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AddVisitExam attaches a catalog exam to a visit
func (c *Client) AddVisitExam(ctx context.Context, visitID, examID string) error {
	body := map[string]string{"examen_id": examID}
	return c.do(ctx, http.MethodPost, "/visitas/"+url.PathEscape(visitID)+"/examenes", body, nil)
}

// RemoveVisitExam detaches an exam order from a visit
func (c *Client) RemoveVisitExam(ctx context.Context, visitID, examID string) error {
	return c.do(ctx, http.MethodDelete, "/visitas/"+url.PathEscape(visitID)+"/examenes/"+url.PathEscape(examID), nil, nil)
}

// GetVisitMedications retrieves the prescriptions owned by a visit
func (c *Client) GetVisitMedications(ctx context.Context, visitID string) ([]*types.MedicationPrescription, error) {
	var prescriptions []*types.MedicationPrescription
	if err := c.do(ctx, http.MethodGet, "/visitas/"+url.PathEscape(visitID)+"/medicamentos", nil, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// AddVisitMedication attaches a prescription to a visit
func (c *Client) AddVisitMedication(ctx context.Context, visitID string, prescription *types.MedicationPrescription) error {
	return c.do(ctx, http.MethodPost, "/visitas/"+url.PathEscape(visitID)+"/medicamentos", prescription, nil)
}

// RemoveVisitMedication detaches a prescription from a visit
func (c *Client) RemoveVisitMedication(ctx context.Context, visitID, medicationID string) error {
	return c.do(ctx, http.MethodDelete, "/visitas/"+url.PathEscape(visitID)+"/medicamentos/"+url.PathEscape(medicationID), nil, nil)
}

// GetRequest retrieves the originating referral for a visit
func (c *Client) GetRequest(ctx context.Context, requestID string) (*types.Request, error) {
	var request types.Request
	if err := c.do(ctx, http.MethodGet, "/solicitudes/"+url.PathEscape(requestID), nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListExams retrieves the exam catalog
func (c *Client) ListExams(ctx context.Context) ([]*types.Exam, error) {
	var exams []*types.Exam
	if err := c.do(ctx, http.MethodGet, "/examenes", nil, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// ListMedications retrieves the medication catalog
func (c *Client) ListMedications(ctx context.Context) ([]*types.Medication, error) {
	var medications []*types.Medication
	if err := c.do(ctx, http.MethodGet, "/medicamentos", nil, &medications); err != nil {
		return nil, err
	}
	return medications, nil
}

// ListNurses retrieves the nursing staff catalog
func (c *Client) ListNurses(ctx context.Context) ([]*types.Nurse, error) {
	var nurses []*types.Nurse
	if err := c.do(ctx, http.MethodGet, "/enfermeros", nil, &nurses); err != nil {
		return nil, err
	}
	return nurses, nil
}

// ListDoctors retrieves the physician catalog
func (c *Client) ListDoctors(ctx context.Context) ([]*types.Doctor, error) {
	var doctors []*types.Doctor
	if err := c.do(ctx, http.MethodGet, "/medicos", nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// ListPendingExams retrieves exams awaiting a laboratory result
func (c *Client) ListPendingExams(ctx context.Context) ([]*types.PendingExam, error) {
	var pending []*types.PendingExam
	if err := c.do(ctx, http.MethodGet, "/laboratorio/pendientes", nil, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// SubmitResult records a laboratory result for a pending exam
func (c *Client) SubmitResult(ctx context.Context, result *types.LabResult) error {
	return c.do(ctx, http.MethodPut, "/laboratorio/resultado", result, nil)
}

// ListPendingVisitDeliveries retrieves prescriptions awaiting delivery
func (c *Client) ListPendingVisitDeliveries(ctx context.Context) ([]*types.PendingDelivery, error) {
	var pending []*types.PendingDelivery
	if err := c.do(ctx, http.MethodGet, "/farmacia/pendientes-visita", nil, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// ConfirmVisitDelivery marks a visit-scoped prescription delivered
func (c *Client) ConfirmVisitDelivery(ctx context.Context, visitID, medicationID string) error {
	body := map[string]string{
		"visita_id":      visitID,
		"medicamento_id": medicationID,
	}
	return c.do(ctx, http.MethodPut, "/farmacia/entregar-visita", body, nil)
}

// ListPendingFixedTreatments retrieves fixed treatments due for dispensing
func (c *Client) ListPendingFixedTreatments(ctx context.Context) ([]*types.FixedTreatment, error) {
	var pending []*types.FixedTreatment
	if err := c.do(ctx, http.MethodGet, "/farmacia/pendientes-fijos", nil, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// DispenseFixedTreatment marks a fixed treatment dispensed
func (c *Client) DispenseFixedTreatment(ctx context.Context, treatmentID, quantity string) error {
	body := map[string]string{
		"tratamiento_id":     treatmentID,
		"cantidad_entregada": quantity,
	}
	return c.do(ctx, http.MethodPut, "/farmacia/entregar-fijo", body, nil)
}

// CreateMedicationCharge records the billing charge for a dispense
func (c *Client) CreateMedicationCharge(ctx context.Context, charge *types.MedicationCharge) error {
	return c.do(ctx, http.MethodPost, "/cobros-medicamentos", charge, nil)
}

// GetPatientHistory retrieves the history aggregation for a patient
func (c *Client) GetPatientHistory(ctx context.Context, patientID string) (*types.PatientHistory, error) {
	var history types.PatientHistory
	if err := c.do(ctx, http.MethodGet, "/pacientes/"+url.PathEscape(patientID)+"/historial", nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// do performs one authenticated request against the API and decodes the
// response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return types.NewNetworkError(types.ErrCodeNetworkFailure, "failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return types.NewNetworkError(types.ErrCodeNetworkFailure, "failed to build request", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Authorization", "Bearer "+c.tokenSource())
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.APIRequest(method, path, requestID, 0, time.Since(start).Milliseconds())
		return types.NewNetworkError(types.ErrCodeNetworkFailure, fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()

	c.logger.APIRequest(method, path, requestID, resp.StatusCode, time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return types.NewAuthenticationError(types.ErrCodeSessionExpired, "session expired")
	}

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return types.NewNetworkError(types.ErrCodeNetworkFailure, "failed to decode response", err)
		}
	}

	return nil
}

// errorFromResponse maps a rejected API call to the portal error taxonomy
func (c *Client) errorFromResponse(resp *http.Response, method, path string) error {
	message := fmt.Sprintf("%s %s rejected with status %d", method, path, resp.StatusCode)

	// The API reports a human-readable reason as {"mensaje": "..."}
	var serverErr struct {
		Mensaje string `json:"mensaje"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Mensaje != "" {
		message = serverErr.Mensaje
	}

	details := map[string]interface{}{
		"status": resp.StatusCode,
		"path":   path,
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return types.NewExternalError(types.ErrCodeNotFound, message, details)
	case http.StatusConflict:
		return types.NewConflictError(types.ErrCodeAlreadyDelivered, message, details)
	default:
		return types.NewExternalError(types.ErrCodeServerError, message, details)
	}
}

func statusQuery(status types.VisitStatus) string {
	if status == "" {
		return ""
	}
	return "?estado=" + url.QueryEscape(string(status))
}
