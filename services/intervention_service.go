package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils"
	"daassist-web/utils/logger"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Intervention detail tabs
const (
	InterventionTabDettagli = "dettagli"
	InterventionTabSessioni = "sessioni"
	InterventionTabRighe    = "righe"
)

// defaultSessionStart is the start time proposed for a new work session
const defaultSessionStart = "09:00"

const defaultActivityMinutes = 60

type InterventionService struct {
	backend   *Backend
	logger    logger.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewInterventionService(backend *Backend, log logger.Logger) *InterventionService {
	return &InterventionService{backend: backend, logger: log, validator: validator.New(), now: time.Now}
}

func (s *InterventionService) List(ctx context.Context, q ListQuery[models.InterventoFilters]) (*models.InterventionListView, error) {
	page, err := loadQuery(ctx, DefaultPageLimit, q, s.fetch)
	if err != nil {
		return nil, err
	}

	rows := make([]models.InterventionRow, 0, len(page.Items))
	for _, i := range page.Items {
		rows = append(rows, interventionRow(i))
	}

	filters := page.Filters
	filters.Page, filters.Limit, filters.Search = page.Page, page.Limit, page.Search
	return &models.InterventionListView{
		Rows:       rows,
		Pagination: page.Pagination(),
		Filters:    filters,
	}, nil
}

func (s *InterventionService) fetch(ctx context.Context, page, limit int, search string, f models.InterventoFilters) ([]models.Intervento, int, error) {
	f.Page, f.Limit, f.Search = page, limit, search
	resp, err := s.backend.Interventions.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return resp.Interventi, resp.Total, nil
}

func (s *InterventionService) FilterOptions(ctx context.Context) (*models.InterventionFilterOptions, error) {
	out := &models.InterventionFilterOptions{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Stati, err = s.backend.Lookup.InterventionStates(gctx)
		return err
	})
	g.Go(func() error {
		resp, err := s.backend.Clients.List(gctx, models.ClienteFilters{Limit: lookupClientsLimit})
		if err != nil {
			return err
		}
		out.Clienti = resp.Clienti
		return nil
	})
	g.Go(func() (err error) {
		out.Tecnici, err = s.backend.Auth.Tecnici(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Detail loads an intervention, its states and the client contracts. The
// sessioni and righe tabs also load their collection.
func (s *InterventionService) Detail(ctx context.Context, id int64, tab string) (*models.InterventionDetailView, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}

	intervento, err := s.backend.Interventions.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "intervention", id)
	}

	row := interventionRow(*intervento)
	view := &models.InterventionDetailView{
		Intervento:  *intervento,
		Tab:         interventionTab(tab),
		StatoBadge:  row.StatoBadge,
		TipoBadge:   row.TipoBadge,
		TravelBadge: row.TravelBadge,
		Contratti:   []models.Contratto{},
	}
	clienteID := intervento.ClienteID()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.Stati, err = s.backend.Lookup.InterventionStates(gctx)
		return err
	})
	if clienteID > 0 {
		g.Go(func() error {
			contratti, err := s.backend.Clients.Contratti(gctx, clienteID)
			view.Contratti = nonNil(contratti)
			return err
		})
	}
	switch view.Tab {
	case InterventionTabSessioni:
		g.Go(func() (err error) {
			view.Sessions, err = s.Sessions(gctx, id)
			return err
		})
	case InterventionTabRighe:
		g.Go(func() (err error) {
			view.Rows, err = s.Rows(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load intervention %d: %w", id, err)
	}

	view.ActiveContract = models.ActiveContract(view.Contratti, s.now())
	return view, nil
}

func interventionTab(tab string) string {
	switch tab {
	case InterventionTabSessioni, InterventionTabRighe:
		return tab
	}
	return InterventionTabDettagli
}

func (s *InterventionService) ChangeState(ctx context.Context, id, statoID int64) (*models.InterventionDetailView, error) {
	if _, err := s.backend.Interventions.Update(ctx, id, models.InterventoUpdate{StatoID: &statoID}); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id, InterventionTabDettagli)
}

func (s *InterventionService) Start(ctx context.Context, id int64, req models.InterventoStart) (*models.InterventionDetailView, error) {
	if _, err := s.backend.Interventions.Start(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id, InterventionTabDettagli)
}

// Complete closes the intervention; descrizione_lavoro is required
func (s *InterventionService) Complete(ctx context.Context, id int64, req models.InterventoComplete) (*models.InterventionDetailView, error) {
	req.DescrizioneLavoro = strings.TrimSpace(req.DescrizioneLavoro)
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, "Inserisci la descrizione del lavoro svolto")
	}
	if _, err := s.backend.Interventions.Complete(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id, InterventionTabDettagli)
}

func (s *InterventionService) Delete(ctx context.Context, id int64) error {
	return s.backend.Interventions.Delete(ctx, id)
}

// Sessions loads the work sessions and the intervention types together
func (s *InterventionService) Sessions(ctx context.Context, id int64) (*models.SessionsView, error) {
	var (
		sessions []models.SessioneLavoro
		types    []models.InterventionType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sessions, err = s.backend.Interventions.Sessions(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		types, err = s.backend.Lookup.InterventionTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &models.SessionsView{
		Sessions: make([]models.SessionRow, 0, len(sessions)),
		Types:    nonNil(types),
	}
	for _, sess := range sessions {
		if sess.DurataMinuti != nil {
			view.TotalMinutes += *sess.DurataMinuti
		}
		view.Sessions = append(view.Sessions, models.SessionRow{
			SessioneLavoro: sess,
			Durata:         utils.FormatDuration(sess.DurataMinuti),
		})
	}
	view.TotalDuration = utils.FormatDuration(&view.TotalMinutes)
	return view, nil
}

// SessionDraft prefills the session editor. sessionID 0 proposes a new
// session for today at 09:00 with the first intervention type.
func (s *InterventionService) SessionDraft(ctx context.Context, id, sessionID int64) (*models.SessioneCreate, error) {
	if sessionID == 0 {
		types, err := s.backend.Lookup.InterventionTypes(ctx)
		if err != nil {
			return nil, err
		}
		return &models.SessioneCreate{
			Data:             s.now().Format("2006-01-02"),
			OraInizio:        defaultSessionStart,
			TipoInterventoID: models.PickDefault(types, ""),
		}, nil
	}

	sessions, err := s.backend.Interventions.Sessions(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == sessionID {
			return draftFromSession(&sessions[i]), nil
		}
	}
	return nil, fmt.Errorf("session %d of intervention %d: %w", sessionID, id, ErrNotFound)
}

func draftFromSession(sess *models.SessioneLavoro) *models.SessioneCreate {
	draft := &models.SessioneCreate{
		Data:               models.DatePart(sess.Data),
		OraInizio:          models.ClockPart(sess.OraInizio),
		KmPercorsi:         sess.KmPercorsi,
		TempoViaggioMinuti: sess.TempoViaggioMinuti,
		Note:               sess.Note,
	}
	if sess.OraFine != nil {
		fine := models.ClockPart(*sess.OraFine)
		draft.OraFine = &fine
	}
	if sess.TipoIntervento != nil {
		draft.TipoInterventoID = sess.TipoIntervento.ID
	}
	return draft
}

func (s *InterventionService) AddSession(ctx context.Context, id int64, req models.SessioneCreate) (*models.SessionsView, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, MsgRequiredFields)
	}
	if _, err := s.backend.Interventions.AddSession(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Sessions(ctx, id)
}

func (s *InterventionService) UpdateSession(ctx context.Context, id, sessionID int64, req models.SessioneUpdate) (*models.SessionsView, error) {
	if _, err := s.backend.Interventions.UpdateSession(ctx, id, sessionID, req); err != nil {
		return nil, err
	}
	return s.Sessions(ctx, id)
}

func (s *InterventionService) DeleteSession(ctx context.Context, id, sessionID int64) (*models.SessionsView, error) {
	if err := s.backend.Interventions.DeleteSession(ctx, id, sessionID); err != nil {
		return nil, err
	}
	return s.Sessions(ctx, id)
}

// Rows loads the billable rows and their total
func (s *InterventionService) Rows(ctx context.Context, id int64) (*models.RowsView, error) {
	rows, err := s.backend.Interventions.Rows(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &models.RowsView{Rows: make([]models.RowLine, 0, len(rows))}
	for _, r := range rows {
		view.Total += r.Importo
		view.Rows = append(view.Rows, models.RowLine{
			RigaAttivita:     r,
			ImportoFormatted: utils.FormatCurrency(r.Importo),
		})
	}
	view.Total = models.RowAmount(view.Total, 1, 0)
	view.TotalFormatted = utils.FormatCurrency(view.Total)
	return view, nil
}

// ActivityDraft prepares a new activity: first category, one hour, and the
// category's default price
func (s *InterventionService) ActivityDraft(ctx context.Context) (*models.ActivityDraftView, error) {
	categories, err := s.backend.Lookup.ActivityCategories(ctx)
	if err != nil {
		return nil, err
	}

	view := &models.ActivityDraftView{
		Fields:    models.AttivitaCreate{Durata: defaultActivityMinutes},
		Categorie: categories,
	}
	if len(categories) > 0 {
		view.Fields.CategoriaID = models.PickDefault(categories, "")
		view.Fields.PrezzoUnitario = categories[0].PrezzoUnitarioDefault
	}
	return view, nil
}

// AddActivity records an activity, which the backend turns into a billable
// row, then reloads the rows
func (s *InterventionService) AddActivity(ctx context.Context, id int64, req models.AttivitaCreate) (*models.RowsView, error) {
	req.Descrizione = strings.TrimSpace(req.Descrizione)
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, MsgRequiredFields)
	}
	if _, err := s.backend.Interventions.AddAttivita(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Rows(ctx, id)
}

// PreviewRow computes the amount shown while a row is edited
func PreviewRow(draft models.RigaAttivitaUpdate) models.RowPreview {
	amount := draft.PreviewAmount()
	return models.RowPreview{Amount: amount, Formatted: utils.FormatCurrency(amount)}
}

func (s *InterventionService) UpdateRow(ctx context.Context, id, rowID int64, req models.RigaAttivitaUpdate) (*models.RowsView, error) {
	if _, err := s.backend.Interventions.UpdateRow(ctx, id, rowID, req); err != nil {
		return nil, err
	}
	return s.Rows(ctx, id)
}

func (s *InterventionService) DeleteRow(ctx context.Context, id, rowID int64) (*models.RowsView, error) {
	if err := s.backend.Interventions.DeleteRow(ctx, id, rowID); err != nil {
		return nil, err
	}
	return s.Rows(ctx, id)
}
