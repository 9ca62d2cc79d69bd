package visit

import (
	"context"
	"sync"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/interfaces"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/rbac"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// OpenVisit is the editable snapshot of one visit with its sub-resources
type OpenVisit struct {
	Visit       *types.Visit
	Exams       []*types.ExamOrder
	Medications []*types.MedicationPrescription
	Request     *types.Request
	ReadOnly    bool
}

// Controller orchestrates viewing and editing a single visit: attaching and
// detaching exam orders and prescriptions, and transitioning visit status.
// It holds at most one open visit; responses for a visit that is no longer
// open are discarded.
type Controller struct {
	api     interfaces.VisitAPI
	logger  *logger.Logger
	claims  *types.UserClaims
	caps    rbac.Capabilities
	onSaved func()

	mu        sync.Mutex
	busy      map[string]bool
	current   *OpenVisit
	currentID string
}

// New creates a new visit workflow controller for the session
func New(api interfaces.VisitAPI, claims *types.UserClaims, log *logger.Logger) *Controller {
	return &Controller{
		api:    api,
		logger: log,
		claims: claims,
		caps:   rbac.ResolveCapabilities(claims.Role),
		busy:   make(map[string]bool),
	}
}

// SetOnSaved registers the callback invoked after a successful save; the
// visit registry uses it to reload the current filtered list. The
// controller does not own the list, it only notifies.
func (c *Controller) SetOnSaved(fn func()) {
	c.onSaved = fn
}

// OpenForEdit loads the visit's exam orders, prescriptions and originating
// request in parallel. A failed sub-fetch resets that collection to empty
// rather than aborting the open. readOnly is forced for completed or
// cancelled visits regardless of the caller's flag, and attempting an edit
// requires the edit capability.
func (c *Controller) OpenForEdit(ctx context.Context, v *types.Visit, readOnly bool) (*OpenVisit, error) {
	if v == nil || v.ID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidSelection, "no visit selected", nil)
	}

	if v.IsTerminal() {
		readOnly = true
	}

	if !readOnly && !c.caps.CanEditVisit {
		return nil, types.NewAuthorizationError(types.ErrCodeForbidden, "role cannot edit visits")
	}

	c.mu.Lock()
	c.currentID = v.ID
	c.mu.Unlock()

	log := c.logger.WithVisitID(v.ID)
	open := &OpenVisit{
		Visit:       v,
		Exams:       []*types.ExamOrder{},
		Medications: []*types.MedicationPrescription{},
		ReadOnly:    readOnly,
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		exams, err := c.api.GetVisitExams(ctx, v.ID)
		if err != nil {
			log.WithError(err).Warn("Exam order fetch failed, opening with empty list")
			return
		}
		open.Exams = exams
	}()

	go func() {
		defer wg.Done()
		medications, err := c.api.GetVisitMedications(ctx, v.ID)
		if err != nil {
			log.WithError(err).Warn("Prescription fetch failed, opening with empty list")
			return
		}
		open.Medications = medications
	}()

	go func() {
		defer wg.Done()
		if v.RequestID == "" {
			return
		}
		request, err := c.api.GetRequest(ctx, v.RequestID)
		if err != nil {
			log.WithError(err).Warn("Referral fetch failed, opening without request context")
			return
		}
		open.Request = request
	}()

	wg.Wait()

	// Apply only if this visit is still the open one; a navigation away
	// while the sub-fetches were in flight makes the snapshot stale.
	c.mu.Lock()
	if c.currentID == v.ID {
		c.current = open
	}
	c.mu.Unlock()

	return open, nil
}

// Current returns the open visit snapshot, or nil when none is open
func (c *Controller) Current() *OpenVisit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Close discards the open visit; late responses for it will be dropped
func (c *Controller) Close() {
	c.mu.Lock()
	c.current = nil
	c.currentID = ""
	c.mu.Unlock()
}

// AttachExam appends an exam order and refetches the canonical list from
// the source of truth to pick up server-computed fields.
func (c *Controller) AttachExam(ctx context.Context, examID string) error {
	open, err := c.mutableVisit()
	if err != nil {
		return err
	}
	if examID == "" {
		return types.NewValidationError(types.ErrCodeInvalidSelection, "no exam selected", nil)
	}

	visitID := open.Visit.ID
	if !c.beginMutation(visitID) {
		return mutationInFlight(visitID)
	}
	defer c.endMutation(visitID)

	if err := c.api.AddVisitExam(ctx, visitID, examID); err != nil {
		return err
	}

	c.logger.Audit(c.claims.UserID, "attach_exam", "visita/"+visitID, true, map[string]interface{}{
		"examen_id": examID,
	})

	c.refreshExams(ctx, visitID)
	return nil
}

// DetachExam removes an exam order after the delete call succeeds; the
// call is awaited first, there is no optimistic removal.
func (c *Controller) DetachExam(ctx context.Context, examID string) error {
	open, err := c.mutableVisit()
	if err != nil {
		return err
	}
	if examID == "" {
		return types.NewValidationError(types.ErrCodeInvalidSelection, "no exam selected", nil)
	}

	visitID := open.Visit.ID
	if !c.beginMutation(visitID) {
		return mutationInFlight(visitID)
	}
	defer c.endMutation(visitID)

	if err := c.api.RemoveVisitExam(ctx, visitID, examID); err != nil {
		return err
	}

	c.logger.Audit(c.claims.UserID, "detach_exam", "visita/"+visitID, true, map[string]interface{}{
		"examen_id": examID,
	})

	c.mu.Lock()
	if c.currentID == visitID && c.current != nil {
		kept := c.current.Exams[:0]
		for _, order := range c.current.Exams {
			if order.ExamID != examID {
				kept = append(kept, order)
			}
		}
		c.current.Exams = kept
	}
	c.mu.Unlock()

	return nil
}

// AttachMedication appends a prescription; medication, quantity and
// instructions are all required.
func (c *Controller) AttachMedication(ctx context.Context, medicationID, quantity, instructions string) error {
	open, err := c.mutableVisit()
	if err != nil {
		return err
	}
	if medicationID == "" || quantity == "" || instructions == "" {
		return types.NewValidationError(types.ErrCodeIncompleteInput, "medication, quantity and instructions are required", nil)
	}

	visitID := open.Visit.ID
	if !c.beginMutation(visitID) {
		return mutationInFlight(visitID)
	}
	defer c.endMutation(visitID)

	prescription := &types.MedicationPrescription{
		VisitID:      visitID,
		MedicationID: medicationID,
		Quantity:     quantity,
		Instructions: instructions,
	}
	if err := c.api.AddVisitMedication(ctx, visitID, prescription); err != nil {
		return err
	}

	c.logger.Audit(c.claims.UserID, "attach_medication", "visita/"+visitID, true, map[string]interface{}{
		"medicamento_id": medicationID,
	})

	c.refreshMedications(ctx, visitID)
	return nil
}

// DetachMedication removes a prescription after the delete call succeeds
func (c *Controller) DetachMedication(ctx context.Context, medicationID string) error {
	open, err := c.mutableVisit()
	if err != nil {
		return err
	}
	if medicationID == "" {
		return types.NewValidationError(types.ErrCodeInvalidSelection, "no medication selected", nil)
	}

	visitID := open.Visit.ID
	if !c.beginMutation(visitID) {
		return mutationInFlight(visitID)
	}
	defer c.endMutation(visitID)

	if err := c.api.RemoveVisitMedication(ctx, visitID, medicationID); err != nil {
		return err
	}

	c.logger.Audit(c.claims.UserID, "detach_medication", "visita/"+visitID, true, map[string]interface{}{
		"medicamento_id": medicationID,
	})

	c.mu.Lock()
	if c.currentID == visitID && c.current != nil {
		kept := c.current.Medications[:0]
		for _, p := range c.current.Medications {
			if p.MedicationID != medicationID {
				kept = append(kept, p)
			}
		}
		c.current.Medications = kept
	}
	c.mu.Unlock()

	return nil
}

// Save submits the visit update as a single PUT. A target status that is
// not reachable from the current status fails with an illegal-transition
// error before any network call. On success the registered listener is
// notified; on failure the visit stays open in edit mode and local state
// is unchanged.
func (c *Controller) Save(ctx context.Context, update *types.VisitUpdate) error {
	open, err := c.mutableVisit()
	if err != nil {
		return err
	}

	if update.Status != nil && !CanTransition(open.Visit.Status, *update.Status) {
		return types.NewWorkflowError(types.ErrCodeIllegalTransition,
			"status transition is not allowed",
			map[string]interface{}{
				"from": string(open.Visit.Status),
				"to":   string(*update.Status),
			})
	}

	visitID := open.Visit.ID
	if !c.beginMutation(visitID) {
		return mutationInFlight(visitID)
	}
	defer c.endMutation(visitID)

	if err := c.api.UpdateVisit(ctx, visitID, update); err != nil {
		c.logger.Audit(c.claims.UserID, "save_visit", "visita/"+visitID, false, nil)
		return err
	}

	c.mu.Lock()
	if c.currentID == visitID && c.current != nil {
		applyUpdate(c.current.Visit, update)
	}
	c.mu.Unlock()

	c.logger.Audit(c.claims.UserID, "save_visit", "visita/"+visitID, true, nil)

	if c.onSaved != nil {
		c.onSaved()
	}
	return nil
}

// mutableVisit returns the open visit if it accepts mutations
func (c *Controller) mutableVisit() (*OpenVisit, error) {
	c.mu.Lock()
	open := c.current
	c.mu.Unlock()

	if open == nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidSelection, "no visit is open", nil)
	}
	if open.ReadOnly {
		return nil, types.NewValidationError(types.ErrCodeInvalidSelection, "visit is read-only", nil)
	}
	return open, nil
}

// beginMutation acquires the per-visit in-flight slot: at most one
// outstanding mutation per visit id.
func (c *Controller) beginMutation(visitID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[visitID] {
		return false
	}
	c.busy[visitID] = true
	return true
}

func (c *Controller) endMutation(visitID string) {
	c.mu.Lock()
	delete(c.busy, visitID)
	c.mu.Unlock()
}

// refreshExams refetches the canonical exam list; a stale response for a
// visit that is no longer open is discarded.
func (c *Controller) refreshExams(ctx context.Context, visitID string) {
	exams, err := c.api.GetVisitExams(ctx, visitID)
	if err != nil {
		c.logger.WithVisitID(visitID).WithError(err).Warn("Exam refetch failed, keeping local list")
		return
	}

	c.mu.Lock()
	if c.currentID == visitID && c.current != nil {
		c.current.Exams = exams
	}
	c.mu.Unlock()
}

func (c *Controller) refreshMedications(ctx context.Context, visitID string) {
	medications, err := c.api.GetVisitMedications(ctx, visitID)
	if err != nil {
		c.logger.WithVisitID(visitID).WithError(err).Warn("Prescription refetch failed, keeping local list")
		return
	}

	c.mu.Lock()
	if c.currentID == visitID && c.current != nil {
		c.current.Medications = medications
	}
	c.mu.Unlock()
}

func applyUpdate(v *types.Visit, update *types.VisitUpdate) {
	if update.Status != nil {
		v.Status = *update.Status
	}
	if update.Diagnosis != nil {
		v.Diagnosis = *update.Diagnosis
	}
	if update.Observations != nil {
		v.Observations = *update.Observations
	}
	if update.NextAppointment != nil {
		v.NextAppointment = update.NextAppointment
	}
}

func mutationInFlight(visitID string) error {
	return types.NewConflictError(types.ErrCodeMutationInFlight,
		"another change for this visit is still in flight",
		map[string]interface{}{"visita_id": visitID})
}
