package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"
)

func testLogger() logger.Logger {
	return logger.NewLoggerWithOutput("error", "json", io.Discard)
}

func i64(v int64) *int64 { return &v }

func str(s string) *string { return &s }

func intPtr(v int) *int { return &v }

// memoryTokens is an in-process TokenStorage
type memoryTokens struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{values: make(map[string]string)}
}

func (m *memoryTokens) GetItem(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryTokens) SetItem(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryTokens) RemoveItem(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryTokens) has(key string) bool {
	_, ok, _ := m.GetItem(context.Background(), key)
	return ok
}

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *mockAuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthAPI) Tecnici(ctx context.Context) ([]models.Tecnico, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tecnico), args.Error(1)
}

func (m *mockAuthAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockClientsAPI struct {
	mock.Mock
}

func (m *mockClientsAPI) List(ctx context.Context, filters models.ClienteFilters) (*models.ClienteListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClienteListResponse), args.Error(1)
}

func (m *mockClientsAPI) Get(ctx context.Context, id int64) (*models.ClienteDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClienteDetail), args.Error(1)
}

func (m *mockClientsAPI) Contratti(ctx context.Context, id int64) ([]models.Contratto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contratto), args.Error(1)
}

func (m *mockClientsAPI) Referenti(ctx context.Context, id int64) ([]models.Referente, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Referente), args.Error(1)
}

func (m *mockClientsAPI) Sedi(ctx context.Context, id int64) ([]models.SedeCliente, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SedeCliente), args.Error(1)
}

func (m *mockClientsAPI) Contatti(ctx context.Context, id int64, filters models.ContattiFilters) ([]models.Referente, error) {
	args := m.Called(ctx, id, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Referente), args.Error(1)
}

func (m *mockClientsAPI) Stats(ctx context.Context, id int64) (*models.ClienteStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClienteStats), args.Error(1)
}

type mockTicketsAPI struct {
	mock.Mock
}

func (m *mockTicketsAPI) ticket(args mock.Arguments) (*models.Ticket, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *mockTicketsAPI) List(ctx context.Context, filters models.TicketFilters) (*models.TicketListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketListResponse), args.Error(1)
}

func (m *mockTicketsAPI) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

func (m *mockTicketsAPI) Create(ctx context.Context, data models.TicketCreate) (*models.Ticket, error) {
	return m.ticket(m.Called(ctx, data))
}

func (m *mockTicketsAPI) Update(ctx context.Context, id int64, data models.TicketUpdate) (*models.Ticket, error) {
	return m.ticket(m.Called(ctx, id, data))
}

func (m *mockTicketsAPI) Assign(ctx context.Context, id int64, data models.TicketAssign) (*models.Ticket, error) {
	return m.ticket(m.Called(ctx, id, data))
}

func (m *mockTicketsAPI) Take(ctx context.Context, id int64) (*models.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

func (m *mockTicketsAPI) Close(ctx context.Context, id int64, data models.TicketClose) (*models.Ticket, error) {
	return m.ticket(m.Called(ctx, id, data))
}

func (m *mockTicketsAPI) AddNote(ctx context.Context, id int64, data models.TicketNote) error {
	return m.Called(ctx, id, data).Error(0)
}

func (m *mockTicketsAPI) AddMessage(ctx context.Context, id int64, data models.TicketMessage) error {
	return m.Called(ctx, id, data).Error(0)
}

func (m *mockTicketsAPI) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTicketsAPI) CreateIntervention(ctx context.Context, id int64) (*models.CreateInterventionResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreateInterventionResult), args.Error(1)
}

func (m *mockTicketsAPI) ScheduleIntervention(ctx context.Context, id int64) (*models.ScheduleInterventionResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleInterventionResult), args.Error(1)
}

type mockInterventionsAPI struct {
	mock.Mock
}

func (m *mockInterventionsAPI) intervento(args mock.Arguments) (*models.Intervento, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Intervento), args.Error(1)
}

func (m *mockInterventionsAPI) List(ctx context.Context, filters models.InterventoFilters) (*models.InterventoListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterventoListResponse), args.Error(1)
}

func (m *mockInterventionsAPI) Get(ctx context.Context, id int64) (*models.Intervento, error) {
	return m.intervento(m.Called(ctx, id))
}

func (m *mockInterventionsAPI) Create(ctx context.Context, data models.InterventoCreate) (*models.Intervento, error) {
	return m.intervento(m.Called(ctx, data))
}

func (m *mockInterventionsAPI) Update(ctx context.Context, id int64, data models.InterventoUpdate) (*models.Intervento, error) {
	return m.intervento(m.Called(ctx, id, data))
}

func (m *mockInterventionsAPI) Start(ctx context.Context, id int64, data models.InterventoStart) (*models.Intervento, error) {
	return m.intervento(m.Called(ctx, id, data))
}

func (m *mockInterventionsAPI) Complete(ctx context.Context, id int64, data models.InterventoComplete) (*models.Intervento, error) {
	return m.intervento(m.Called(ctx, id, data))
}

func (m *mockInterventionsAPI) AddAttivita(ctx context.Context, id int64, data models.AttivitaCreate) (*models.Attivita, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attivita), args.Error(1)
}

func (m *mockInterventionsAPI) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInterventionsAPI) Sessions(ctx context.Context, id int64) ([]models.SessioneLavoro, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessioneLavoro), args.Error(1)
}

func (m *mockInterventionsAPI) AddSession(ctx context.Context, id int64, data models.SessioneCreate) (*models.SessioneLavoro, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessioneLavoro), args.Error(1)
}

func (m *mockInterventionsAPI) UpdateSession(ctx context.Context, id, sessionID int64, data models.SessioneUpdate) (*models.SessioneLavoro, error) {
	args := m.Called(ctx, id, sessionID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessioneLavoro), args.Error(1)
}

func (m *mockInterventionsAPI) DeleteSession(ctx context.Context, id, sessionID int64) error {
	return m.Called(ctx, id, sessionID).Error(0)
}

func (m *mockInterventionsAPI) Rows(ctx context.Context, id int64) ([]models.RigaAttivita, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RigaAttivita), args.Error(1)
}

func (m *mockInterventionsAPI) UpdateRow(ctx context.Context, id, rowID int64, data models.RigaAttivitaUpdate) (*models.RigaAttivita, error) {
	args := m.Called(ctx, id, rowID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RigaAttivita), args.Error(1)
}

func (m *mockInterventionsAPI) DeleteRow(ctx context.Context, id, rowID int64) error {
	return m.Called(ctx, id, rowID).Error(0)
}

type mockTechniciansAPI struct {
	mock.Mock
}

func (m *mockTechniciansAPI) technician(args mock.Arguments) (*models.Technician, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Technician), args.Error(1)
}

func (m *mockTechniciansAPI) List(ctx context.Context, filters models.TechnicianFilters) (*models.TechnicianListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TechnicianListResponse), args.Error(1)
}

func (m *mockTechniciansAPI) Get(ctx context.Context, id int64) (*models.Technician, error) {
	return m.technician(m.Called(ctx, id))
}

func (m *mockTechniciansAPI) Create(ctx context.Context, data models.TechnicianCreate) (*models.Technician, error) {
	return m.technician(m.Called(ctx, data))
}

func (m *mockTechniciansAPI) Update(ctx context.Context, id int64, data models.TechnicianUpdate) (*models.Technician, error) {
	return m.technician(m.Called(ctx, id, data))
}

func (m *mockTechniciansAPI) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockLookupAPI struct {
	mock.Mock
}

func (m *mockLookupAPI) Channels(ctx context.Context) ([]models.Channel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Channel), args.Error(1)
}

func (m *mockLookupAPI) Priorities(ctx context.Context) ([]models.Priority, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Priority), args.Error(1)
}

func (m *mockLookupAPI) TicketStates(ctx context.Context) ([]models.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.State), args.Error(1)
}

func (m *mockLookupAPI) InterventionStates(ctx context.Context) ([]models.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.State), args.Error(1)
}

func (m *mockLookupAPI) InterventionTypes(ctx context.Context) ([]models.InterventionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InterventionType), args.Error(1)
}

func (m *mockLookupAPI) ActivityCategories(ctx context.Context) ([]models.ActivityCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActivityCategory), args.Error(1)
}

func (m *mockLookupAPI) InterventionOrigins(ctx context.Context) ([]models.InterventionOrigin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InterventionOrigin), args.Error(1)
}

func (m *mockLookupAPI) Departments(ctx context.Context) ([]models.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Department), args.Error(1)
}

func (m *mockLookupAPI) UserRoles(ctx context.Context) ([]models.UserRole, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserRole), args.Error(1)
}

type mockDashboardAPI struct {
	mock.Mock
}

func (m *mockDashboardAPI) Get(ctx context.Context) (*models.DashboardData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardData), args.Error(1)
}

// mockBackend bundles one mock per resource
type mockBackend struct {
	auth          *mockAuthAPI
	clients       *mockClientsAPI
	tickets       *mockTicketsAPI
	interventions *mockInterventionsAPI
	technicians   *mockTechniciansAPI
	lookup        *mockLookupAPI
	dashboard     *mockDashboardAPI
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		auth:          &mockAuthAPI{},
		clients:       &mockClientsAPI{},
		tickets:       &mockTicketsAPI{},
		interventions: &mockInterventionsAPI{},
		technicians:   &mockTechniciansAPI{},
		lookup:        &mockLookupAPI{},
		dashboard:     &mockDashboardAPI{},
	}
}

func (m *mockBackend) backend() *Backend {
	return &Backend{
		Auth:          m.auth,
		Clients:       m.clients,
		Tickets:       m.tickets,
		Interventions: m.interventions,
		Technicians:   m.technicians,
		Lookup:        m.lookup,
		Dashboard:     m.dashboard,
	}
}

func lookupItem(id int64, codice string) models.LookupItem {
	return models.LookupItem{ID: id, Codice: codice, Descrizione: codice, Attivo: true}
}
