package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// defaultPriority is preselected in the ticket form when available
const defaultPriority = "NORMALE"

// TicketForm is the server-held state of the ticket create dialog of one
// browser session
type TicketForm struct {
	mu         sync.Mutex
	backend    *Backend
	logger     logger.Logger
	validator  *validator.Validate
	now        func() time.Time
	generation uint64

	fields    models.TicketCreate
	clienti   []models.Cliente
	canali    []models.Channel
	priorita  []models.Priority
	reparti   []models.Department
	referenti []models.Referente
	contratti []models.Contratto
	err       string
}

func NewTicketForm(backend *Backend, log logger.Logger) *TicketForm {
	return &TicketForm{
		backend:   backend,
		logger:    log,
		validator: validator.New(),
		now:       time.Now,
	}
}

// Open loads clients and lookups and applies the default channel and
// priority. A load failure is reported in the form error.
func (f *TicketForm) Open(ctx context.Context) *models.TicketFormView {
	var (
		clienti  *models.ClienteListResponse
		canali   []models.Channel
		priorita []models.Priority
		reparti  []models.Department
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clienti, err = f.backend.Clients.List(gctx, models.ClienteFilters{Limit: formClientsLimit})
		return err
	})
	g.Go(func() (err error) {
		canali, err = f.backend.Lookup.Channels(gctx)
		return err
	})
	g.Go(func() (err error) {
		priorita, err = f.backend.Lookup.Priorities(gctx)
		return err
	})
	g.Go(func() (err error) {
		reparti, err = f.backend.Lookup.Departments(gctx)
		return err
	})
	err := g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.logger.Errorf("Failed to load ticket form lookups: %v", err)
		f.err = MsgLoadFailed
		return f.view()
	}

	f.clienti = clienti.Clienti
	f.canali = canali
	f.priorita = priorita
	f.reparti = reparti
	f.applyDefaults()
	return f.view()
}

func (f *TicketForm) applyDefaults() {
	if f.fields.CanaleID == nil || *f.fields.CanaleID == 0 {
		if id := models.PickDefault(f.canali, ""); id != 0 {
			f.fields.CanaleID = &id
		}
	}
	if f.fields.PrioritaID == nil || *f.fields.PrioritaID == 0 {
		if id := models.PickDefault(f.priorita, defaultPriority); id != 0 {
			f.fields.PrioritaID = &id
		}
	}
}

// SelectClient loads the contacts and active contracts of the chosen client.
// Id 0 clears them. Only the response of the latest selection is applied.
func (f *TicketForm) SelectClient(ctx context.Context, clienteID int64) *models.TicketFormView {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.fields.ClienteID = clienteID
	f.fields.ReferenteID = nil
	f.fields.ContrattoID = nil
	f.referenti = nil
	f.contratti = nil
	if clienteID <= 0 {
		defer f.mu.Unlock()
		return f.view()
	}
	f.mu.Unlock()

	var (
		referenti []models.Referente
		contratti []models.Contratto
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		referenti, err = f.backend.Clients.Referenti(gctx, clienteID)
		return err
	})
	g.Go(func() (err error) {
		contratti, err = f.backend.Clients.Contratti(gctx, clienteID)
		return err
	})
	err := g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		f.logger.Debugf("Discarding stale client %d data for ticket form", clienteID)
		return f.view()
	}
	if err != nil {
		f.logger.Errorf("Failed to load client %d data for ticket form: %v", clienteID, err)
		return f.view()
	}
	f.referenti = referenti
	f.contratti = models.ActiveContracts(contratti, f.now())
	return f.view()
}

// Submit validates and creates the ticket. On success the form is reset;
// on failure the error is kept in the form and returned.
func (f *TicketForm) Submit(ctx context.Context, fields models.TicketCreate) (*models.FormResult, error) {
	f.mu.Lock()
	f.fields = fields
	f.err = ""
	f.mu.Unlock()

	if err := f.validator.Struct(&fields); err != nil {
		verr := newValidationError(err, MsgRequiredFields)
		f.setError(verr.Message)
		return nil, verr
	}

	ticket, err := f.backend.Tickets.Create(ctx, fields)
	if err != nil {
		f.logger.Errorf("Failed to create ticket: %v", err)
		f.setError(UserMessage(err, MsgTicketCreate))
		return nil, err
	}

	f.logger.Infof("Ticket %s created", ticket.Numero)
	f.Close()
	return &models.FormResult{ID: ticket.ID, Numero: ticket.Numero, ReloadList: true}, nil
}

// Close resets the fields to their defaults and clears error and dependents.
// A selection still in flight is discarded.
func (f *TicketForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.fields = models.TicketCreate{}
	f.referenti = nil
	f.contratti = nil
	f.err = ""
	f.applyDefaults()
}

// View returns a snapshot of the form
func (f *TicketForm) View() *models.TicketFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

func (f *TicketForm) setError(msg string) {
	f.mu.Lock()
	f.err = msg
	f.mu.Unlock()
}

func (f *TicketForm) view() *models.TicketFormView {
	return &models.TicketFormView{
		Fields:    f.fields,
		Clienti:   nonNil(f.clienti),
		Canali:    nonNil(f.canali),
		Priorita:  nonNil(f.priorita),
		Reparti:   nonNil(f.reparti),
		Referenti: nonNil(f.referenti),
		Contratti: nonNil(f.contratti),
		Error:     f.err,
	}
}
