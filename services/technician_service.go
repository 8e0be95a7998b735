package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

type TechnicianService struct {
	backend   *Backend
	logger    logger.Logger
	validator *validator.Validate
}

func NewTechnicianService(backend *Backend, log logger.Logger) *TechnicianService {
	return &TechnicianService{backend: backend, logger: log, validator: validator.New()}
}

// List loads one page of technicians with the department and role lookups.
// Without an explicit attivo filter only active technicians are listed.
func (s *TechnicianService) List(ctx context.Context, q ListQuery[models.TechnicianFilters]) (*models.TechnicianListView, error) {
	if q.Filters.Attivo == nil {
		active := true
		q.Filters.Attivo = &active
	}

	var (
		page    *ListPage[models.TechnicianFilters, models.Technician]
		reparti []models.Department
		ruoli   []models.UserRole
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page, err = loadQuery(gctx, TechnicianPageLimit, q, s.fetch)
		return err
	})
	g.Go(func() (err error) {
		reparti, err = s.backend.Lookup.Departments(gctx)
		return err
	})
	g.Go(func() (err error) {
		ruoli, err = s.backend.Lookup.UserRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]models.TechnicianRow, 0, len(page.Items))
	for _, t := range page.Items {
		rows = append(rows, models.TechnicianRow{Technician: t, NomeCompleto: t.FullName()})
	}

	filters := page.Filters
	filters.Page, filters.Limit, filters.Search = page.Page, page.Limit, page.Search
	return &models.TechnicianListView{
		Rows:       rows,
		Pagination: page.Pagination(),
		Filters:    filters,
		Reparti:    nonNil(reparti),
		Ruoli:      nonNil(ruoli),
	}, nil
}

func (s *TechnicianService) fetch(ctx context.Context, page, limit int, search string, f models.TechnicianFilters) ([]models.Technician, int, error) {
	f.Page, f.Limit, f.Search = page, limit, search
	resp, err := s.backend.Technicians.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return resp.Items, resp.Total, nil
}

// Draft returns the defaults of the create dialog
func (s *TechnicianService) Draft(ctx context.Context) (*models.TechnicianCreate, error) {
	ruoli, err := s.backend.Lookup.UserRoles(ctx)
	if err != nil {
		return nil, err
	}
	return &models.TechnicianCreate{
		RuoloID:          models.PickDefault(ruoli, models.DefaultTechnicianRole),
		ColoreCalendario: models.DefaultCalendarColor,
		NotificheEmail:   true,
		NotifichePush:    true,
	}, nil
}

func (s *TechnicianService) Create(ctx context.Context, req models.TechnicianCreate) (*models.Technician, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, MsgRequiredFields)
	}
	if req.ColoreCalendario == "" {
		req.ColoreCalendario = models.DefaultCalendarColor
	}

	tech, err := s.backend.Technicians.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Technician %s created", tech.Username)
	return tech, nil
}

func (s *TechnicianService) Update(ctx context.Context, id int64, req models.TechnicianUpdate) (*models.Technician, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, MsgTechnicianSave)
	}
	return s.backend.Technicians.Update(ctx, id, req)
}

// ToggleActive flips the attivo flag of a technician
func (s *TechnicianService) ToggleActive(ctx context.Context, id int64) (*models.Technician, error) {
	tech, err := s.backend.Technicians.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "technician", id)
	}

	attivo := !tech.Attivo
	updated, err := s.backend.Technicians.Update(ctx, id, models.TechnicianUpdate{Attivo: &attivo})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle technician %d: %w", id, err)
	}
	return updated, nil
}

func (s *TechnicianService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.Technicians.Delete(ctx, id); err != nil {
		return notFound(err, "technician", id)
	}
	return nil
}
