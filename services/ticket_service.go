package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils"
	"daassist-web/utils/logger"
	"daassist-web/utils/palette"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// CloseTypes are the accepted ticket close outcomes, in display order
var CloseTypes = []string{
	models.ChiusuraRisolto,
	models.ChiusuraNonRisolvibile,
	models.ChiusuraDuplicato,
	models.ChiusuraNonPertinente,
	models.ChiusuraAnnullato,
}

type TicketService struct {
	backend   *Backend
	logger    logger.Logger
	validator *validator.Validate
}

func NewTicketService(backend *Backend, log logger.Logger) *TicketService {
	return &TicketService{backend: backend, logger: log, validator: validator.New()}
}

func (s *TicketService) List(ctx context.Context, q ListQuery[models.TicketFilters]) (*models.TicketListView, error) {
	page, err := loadQuery(ctx, DefaultPageLimit, q, s.fetch)
	if err != nil {
		return nil, err
	}

	rows := make([]models.TicketRow, 0, len(page.Items))
	for _, t := range page.Items {
		rows = append(rows, ticketRow(t))
	}

	filters := page.Filters
	filters.Page, filters.Limit, filters.Search = page.Page, page.Limit, page.Search
	return &models.TicketListView{
		Rows:       rows,
		Pagination: page.Pagination(),
		Filters:    filters,
	}, nil
}

func (s *TicketService) fetch(ctx context.Context, page, limit int, search string, f models.TicketFilters) ([]models.Ticket, int, error) {
	f.Page, f.Limit, f.Search = page, limit, search
	resp, err := s.backend.Tickets.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return resp.Tickets, resp.Total, nil
}

func ticketRow(t models.Ticket) models.TicketRow {
	return models.TicketRow{
		Ticket:        t,
		PrioritaBadge: prioritaBadge(&t),
		StatoBadge:    statoBadge(&t),
	}
}

func prioritaBadge(t *models.Ticket) models.Badge {
	label := ""
	if t.Priorita != nil {
		label = t.Priorita.Descrizione
	}
	return palette.Badge(palette.TicketPriority, t.PrioritaCodice(), label)
}

func statoBadge(t *models.Ticket) models.Badge {
	label := ""
	if t.Stato != nil {
		label = t.Stato.Descrizione
	}
	return palette.Badge(palette.TicketState, t.StatoCodice(), label)
}

// FilterOptions loads the choices of the ticket list filters
func (s *TicketService) FilterOptions(ctx context.Context) (*models.TicketFilterOptions, error) {
	out := &models.TicketFilterOptions{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Stati, err = s.backend.Lookup.TicketStates(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Priorita, err = s.backend.Lookup.Priorities(gctx)
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

// Detail loads a ticket, then its states, client contracts and contacts,
// technicians and linked interventions in parallel
func (s *TicketService) Detail(ctx context.Context, id int64) (*models.TicketDetailView, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}

	ticket, err := s.backend.Tickets.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "ticket", id)
	}

	view := &models.TicketDetailView{
		Ticket:        *ticket,
		PrioritaBadge: prioritaBadge(ticket),
		StatoBadge:    statoBadge(ticket),
		Contratti:     []models.Contratto{},
		Referenti:     []models.Referente{},
		Interventi:    []models.InterventionRow{},
		CloseTypes:    CloseTypes,
	}
	clienteID := ticket.ClienteID()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.Stati, err = s.backend.Lookup.TicketStates(gctx)
		return err
	})
	if clienteID > 0 {
		g.Go(func() error {
			contratti, err := s.backend.Clients.Contratti(gctx, clienteID)
			view.Contratti = nonNil(contratti)
			return err
		})
		g.Go(func() error {
			referenti, err := s.backend.Clients.Referenti(gctx, clienteID)
			view.Referenti = nonNil(referenti)
			return err
		})
	}
	g.Go(func() (err error) {
		view.Tecnici, err = s.backend.Auth.Tecnici(gctx)
		return err
	})
	g.Go(func() error {
		resp, err := s.backend.Interventions.List(gctx, models.InterventoFilters{TicketID: &id, Limit: relatedListLimit})
		if err != nil {
			return err
		}
		for _, i := range resp.Interventi {
			view.Interventi = append(view.Interventi, interventionRow(i))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load ticket %d: %w", id, err)
	}

	view.ActiveContract = models.ActiveContract(view.Contratti, time.Now())
	return view, nil
}

// ChangeState sets a new state and reloads the ticket
func (s *TicketService) ChangeState(ctx context.Context, id, statoID int64) (*models.TicketDetailView, error) {
	if _, err := s.backend.Tickets.Update(ctx, id, models.TicketUpdate{StatoID: &statoID}); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id)
}

// SetTechnician assigns the ticket, or unassigns it when tecnicoID is nil
func (s *TicketService) SetTechnician(ctx context.Context, id int64, tecnicoID *int64) (*models.TicketDetailView, error) {
	update := models.TicketUpdate{TecnicoAssegnatoID: models.Null[int64]()}
	if tecnicoID != nil {
		update.TecnicoAssegnatoID = models.Some(*tecnicoID)
	}
	if _, err := s.backend.Tickets.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id)
}

func (s *TicketService) Assign(ctx context.Context, id int64, req models.TicketAssign) (*models.TicketDetailView, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, MsgRequiredFields)
	}
	if _, err := s.backend.Tickets.Assign(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id)
}

// Take assigns the ticket to the logged-in user
func (s *TicketService) Take(ctx context.Context, id int64) (*models.TicketDetailView, error) {
	if _, err := s.backend.Tickets.Take(ctx, id); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id)
}

func (s *TicketService) Close(ctx context.Context, id int64, req models.TicketClose) (*models.TicketDetailView, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, "Seleziona il tipo di chiusura")
	}
	if _, err := s.backend.Tickets.Close(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id)
}

func (s *TicketService) AddNote(ctx context.Context, id int64, req models.TicketNote) (*models.TicketDetailView, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, MsgRequiredFields)
	}
	if err := s.backend.Tickets.AddNote(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id)
}

func (s *TicketService) AddMessage(ctx context.Context, id int64, req models.TicketMessage) (*models.TicketDetailView, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, newValidationError(err, MsgRequiredFields)
	}
	if err := s.backend.Tickets.AddMessage(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Detail(ctx, id)
}

// CreateIntervention opens an intervention from the ticket; the caller
// navigates to the returned intervention id
func (s *TicketService) CreateIntervention(ctx context.Context, id int64) (*models.CreateInterventionResult, error) {
	return s.backend.Tickets.CreateIntervention(ctx, id)
}

// ScheduleIntervention queues an intervention request and reloads the ticket
func (s *TicketService) ScheduleIntervention(ctx context.Context, id int64) (*models.ScheduleView, error) {
	result, err := s.backend.Tickets.ScheduleIntervention(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ScheduleView{Result: *result, Ticket: view}, nil
}

// Delete soft-deletes the ticket
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	return s.backend.Tickets.Delete(ctx, id)
}

// interventionRow is shared by the interventions list and the ticket detail
func interventionRow(i models.Intervento) models.InterventionRow {
	stato, statoLabel := "", ""
	if i.Stato != nil {
		stato, statoLabel = i.Stato.Codice, i.Stato.Descrizione
	}
	tipo, tipoLabel := "", ""
	if i.TipoIntervento != nil {
		tipo, tipoLabel = i.TipoIntervento.Codice, i.TipoIntervento.Descrizione
	}
	return models.InterventionRow{
		Intervento:  i,
		StatoBadge:  palette.Badge(palette.InterventionState, stato, statoLabel),
		TipoBadge:   palette.Badge(palette.InterventionType, tipo, tipoLabel),
		TravelBadge: palette.TravelBadge(i.RichiedeViaggio()),
		Durata:      utils.FormatCompactDuration(i.DurataMinuti),
	}
}
