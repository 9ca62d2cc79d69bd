package registry

import (
	"context"
	"sync"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/interfaces"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/rbac"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// validFilters are the status values the visit list accepts. The empty
// value is the implicit "all" used by administrative views.
var validFilters = map[types.VisitStatus]bool{
	"":                           true,
	types.StatusProgramada:       true,
	types.StatusRealizada:        true,
	types.FilterResultadosListos: true,
	types.StatusCompletada:       true,
}

// Service serves the role-scoped, status-filtered visit list. A failed
// fetch keeps the previous list visible: stale-but-visible over blank.
type Service struct {
	api    interfaces.VisitAPI
	logger *logger.Logger

	mu         sync.Mutex
	visits     []*types.Visit
	lastClaims *types.UserClaims
	lastStatus types.VisitStatus
}

// New creates a new visit registry
func New(api interfaces.VisitAPI, log *logger.Logger) *Service {
	return &Service{
		api:    api,
		logger: log,
		visits: []*types.Visit{},
	}
}

// ListVisits loads the visit list for the caller's role and status filter.
// Medical roles are scoped to their own appointments, administrative roles
// see all visits, and every other role gets an empty list.
func (s *Service) ListVisits(ctx context.Context, claims *types.UserClaims, status types.VisitStatus) []*types.Visit {
	log := s.logger.WithComponent("registry")

	if !validFilters[status] {
		log.WithField("filter", string(status)).Warn("Unknown status filter, returning current list")
		return s.current()
	}

	s.mu.Lock()
	s.lastClaims = claims
	s.lastStatus = status
	s.mu.Unlock()

	caps := rbac.ResolveCapabilities(claims.Role)

	var visits []*types.Visit
	var err error

	switch {
	case caps.CanViewAllVisits:
		visits, err = s.api.ListVisits(ctx, status)
	case caps.CanViewOwnVisits:
		visits, err = s.api.ListMyVisits(ctx, status)
	default:
		// No visit list for this role; not an error
		return []*types.Visit{}
	}

	if err != nil {
		log.WithError(err).Error("Visit list fetch failed, keeping previous list")
		return s.current()
	}

	if visits == nil {
		visits = []*types.Visit{}
	}

	s.mu.Lock()
	s.visits = visits
	s.mu.Unlock()

	return visits
}

// Reload re-runs the last query; the visit workflow invokes it after a
// successful save so the owning list reflects the transition.
func (s *Service) Reload(ctx context.Context) []*types.Visit {
	s.mu.Lock()
	claims := s.lastClaims
	status := s.lastStatus
	s.mu.Unlock()

	if claims == nil {
		return s.current()
	}
	return s.ListVisits(ctx, claims, status)
}

func (s *Service) current() []*types.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visits
}
