package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// InterventionForm is the server-held state of the intervention create
// dialog of one browser session
type InterventionForm struct {
	mu         sync.Mutex
	backend    *Backend
	logger     logger.Logger
	validator  *validator.Validate
	generation uint64

	fields  models.InterventoCreate
	userID  int64
	clienti []models.Cliente
	tipi    []models.InterventionType
	stati   []models.State
	origini []models.InterventionOrigin
	tickets []models.Ticket
	err     string
}

func NewInterventionForm(backend *Backend, log logger.Logger) *InterventionForm {
	return &InterventionForm{backend: backend, logger: log, validator: validator.New()}
}

// Open loads clients and lookups and applies the defaults: first type,
// PIANIFICATO, SPONTANEO and the current user as technician
func (f *InterventionForm) Open(ctx context.Context, user *models.User) *models.InterventionFormView {
	var (
		clienti *models.ClienteListResponse
		tipi    []models.InterventionType
		stati   []models.State
		origini []models.InterventionOrigin
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clienti, err = f.backend.Clients.List(gctx, models.ClienteFilters{Limit: formClientsLimit})
		return err
	})
	g.Go(func() (err error) {
		tipi, err = f.backend.Lookup.InterventionTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		stati, err = f.backend.Lookup.InterventionStates(gctx)
		return err
	})
	g.Go(func() (err error) {
		origini, err = f.backend.Lookup.InterventionOrigins(gctx)
		return err
	})
	err := g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	if user != nil {
		f.userID = user.ID
	}
	if err != nil {
		f.logger.Errorf("Failed to load intervention form lookups: %v", err)
		f.err = MsgLoadFailed
		return f.view()
	}

	f.clienti = clienti.Clienti
	f.tipi = tipi
	f.stati = stati
	f.origini = origini
	f.applyDefaults()
	return f.view()
}

func (f *InterventionForm) applyDefaults() {
	if f.fields.TipoInterventoID == 0 {
		f.fields.TipoInterventoID = models.PickDefault(f.tipi, "")
	}
	if f.fields.StatoID == 0 {
		f.fields.StatoID = models.PickDefault(f.stati, models.InterventoStatoPianificato)
	}
	if f.fields.OrigineID == 0 {
		f.fields.OrigineID = models.PickDefault(f.origini, models.OrigineSpontaneo)
	}
	if f.userID != 0 {
		f.fields.TecnicoID = f.userID
	}
}

// SelectClient loads the open tickets of the chosen client. Id 0 clears
// them. Only the response of the latest selection is applied.
func (f *InterventionForm) SelectClient(ctx context.Context, clienteID int64) *models.InterventionFormView {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.fields.ClienteID = clienteID
	f.fields.TicketID = nil
	f.tickets = nil
	if clienteID <= 0 {
		defer f.mu.Unlock()
		return f.view()
	}
	f.mu.Unlock()

	resp, err := f.backend.Tickets.List(ctx, models.TicketFilters{
		Page:      1,
		Limit:     openTicketsLimit,
		ClienteID: &clienteID,
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		f.logger.Debugf("Discarding stale client %d tickets for intervention form", clienteID)
		return f.view()
	}
	if err != nil {
		f.logger.Errorf("Failed to load client %d tickets for intervention form: %v", clienteID, err)
		return f.view()
	}

	open := make([]models.Ticket, 0, len(resp.Tickets))
	for _, t := range resp.Tickets {
		if t.IsOpen() {
			open = append(open, t)
		}
	}
	f.tickets = open
	return f.view()
}

// Submit validates and creates the intervention. On success the form is
// reset; on failure the error is kept in the form and returned.
func (f *InterventionForm) Submit(ctx context.Context, fields models.InterventoCreate) (*models.FormResult, error) {
	f.mu.Lock()
	f.fields = fields
	f.err = ""
	f.mu.Unlock()

	if err := f.validator.Struct(&fields); err != nil {
		verr := newValidationError(err, MsgRequiredFields)
		f.setError(verr.Message)
		return nil, verr
	}

	intervento, err := f.backend.Interventions.Create(ctx, fields)
	if err != nil {
		f.logger.Errorf("Failed to create intervention: %v", err)
		f.setError(UserMessage(err, MsgInterventoCreate))
		return nil, err
	}

	f.logger.Infof("Intervention %s created", intervento.Numero)
	f.Close()
	return &models.FormResult{ID: intervento.ID, Numero: intervento.Numero, ReloadList: true}, nil
}

// Close resets the fields to their defaults and clears error and tickets
func (f *InterventionForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.fields = models.InterventoCreate{}
	f.tickets = nil
	f.err = ""
	f.applyDefaults()
}

func (f *InterventionForm) View() *models.InterventionFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

func (f *InterventionForm) setError(msg string) {
	f.mu.Lock()
	f.err = msg
	f.mu.Unlock()
}

func (f *InterventionForm) view() *models.InterventionFormView {
	return &models.InterventionFormView{
		Fields:  f.fields,
		Clienti: nonNil(f.clienti),
		Tipi:    nonNil(f.tipi),
		Stati:   nonNil(f.stati),
		Origini: nonNil(f.origini),
		Tickets: nonNil(f.tickets),
		Error:   f.err,
	}
}
