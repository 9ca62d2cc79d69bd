package catalog

import (
	"context"
	"sync"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/interfaces"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/logger"
	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// Service loads and holds the read-mostly reference lists used to populate
// pickers. Catalogs are fetched once per screen mount; reference data
// changes rarely enough that no invalidation is needed beyond Reset.
type Service struct {
	api    interfaces.CatalogAPI
	logger *logger.Logger

	mu       sync.Mutex
	loaded   bool
	catalogs types.Catalogs
}

// New creates a new catalog service
func New(api interfaces.CatalogAPI, log *logger.Logger) *Service {
	return &Service{
		api:    api,
		logger: log,
	}
}

// LoadCatalogs fetches the four reference lists in parallel. A failed fetch
// degrades that catalog to an empty list; it never blocks the others or
// fails the whole load.
func (s *Service) LoadCatalogs(ctx context.Context) *types.Catalogs {
	s.mu.Lock()
	if s.loaded {
		cached := s.catalogs
		s.mu.Unlock()
		return &cached
	}
	s.mu.Unlock()

	result := types.Catalogs{
		Exams:       []*types.Exam{},
		Medications: []*types.Medication{},
		Nurses:      []*types.Nurse{},
		Doctors:     []*types.Doctor{},
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		exams, err := s.api.ListExams(ctx)
		if err != nil {
			s.logger.WithComponent("catalog").WithError(err).Warn("Exam catalog fetch failed")
			return
		}
		result.Exams = exams
	}()

	go func() {
		defer wg.Done()
		medications, err := s.api.ListMedications(ctx)
		if err != nil {
			s.logger.WithComponent("catalog").WithError(err).Warn("Medication catalog fetch failed")
			return
		}
		result.Medications = medications
	}()

	go func() {
		defer wg.Done()
		nurses, err := s.api.ListNurses(ctx)
		if err != nil {
			s.logger.WithComponent("catalog").WithError(err).Warn("Nurse catalog fetch failed")
			return
		}
		result.Nurses = nurses
	}()

	go func() {
		defer wg.Done()
		doctors, err := s.api.ListDoctors(ctx)
		if err != nil {
			s.logger.WithComponent("catalog").WithError(err).Warn("Doctor catalog fetch failed")
			return
		}
		result.Doctors = doctors
	}()

	wg.Wait()

	s.mu.Lock()
	s.catalogs = result
	s.loaded = true
	s.mu.Unlock()

	return &result
}

// Reset clears the cached catalogs so the next load refetches; called on a
// fresh screen mount.
func (s *Service) Reset() {
	s.mu.Lock()
	s.loaded = false
	s.catalogs = types.Catalogs{}
	s.mu.Unlock()
}
