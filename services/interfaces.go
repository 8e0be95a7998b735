package services

import (
	"context"
	"daassist-web/apiclient"
	"daassist-web/models"
	"time"
)

// AuthAPI is the part of the API client used for authentication
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Tecnici(ctx context.Context) ([]models.Tecnico, error)
	Logout(ctx context.Context) error
}

type ClientsAPI interface {
	List(ctx context.Context, filters models.ClienteFilters) (*models.ClienteListResponse, error)
	Get(ctx context.Context, id int64) (*models.ClienteDetail, error)
	Contratti(ctx context.Context, id int64) ([]models.Contratto, error)
	Referenti(ctx context.Context, id int64) ([]models.Referente, error)
	Sedi(ctx context.Context, id int64) ([]models.SedeCliente, error)
	Contatti(ctx context.Context, id int64, filters models.ContattiFilters) ([]models.Referente, error)
	Stats(ctx context.Context, id int64) (*models.ClienteStats, error)
}

type TicketsAPI interface {
	List(ctx context.Context, filters models.TicketFilters) (*models.TicketListResponse, error)
	Get(ctx context.Context, id int64) (*models.Ticket, error)
	Create(ctx context.Context, data models.TicketCreate) (*models.Ticket, error)
	Update(ctx context.Context, id int64, data models.TicketUpdate) (*models.Ticket, error)
	Assign(ctx context.Context, id int64, data models.TicketAssign) (*models.Ticket, error)
	Take(ctx context.Context, id int64) (*models.Ticket, error)
	Close(ctx context.Context, id int64, data models.TicketClose) (*models.Ticket, error)
	AddNote(ctx context.Context, id int64, data models.TicketNote) error
	AddMessage(ctx context.Context, id int64, data models.TicketMessage) error
	Delete(ctx context.Context, id int64) error
	CreateIntervention(ctx context.Context, id int64) (*models.CreateInterventionResult, error)
	ScheduleIntervention(ctx context.Context, id int64) (*models.ScheduleInterventionResult, error)
}

type InterventionsAPI interface {
	List(ctx context.Context, filters models.InterventoFilters) (*models.InterventoListResponse, error)
	Get(ctx context.Context, id int64) (*models.Intervento, error)
	Create(ctx context.Context, data models.InterventoCreate) (*models.Intervento, error)
	Update(ctx context.Context, id int64, data models.InterventoUpdate) (*models.Intervento, error)
	Start(ctx context.Context, id int64, data models.InterventoStart) (*models.Intervento, error)
	Complete(ctx context.Context, id int64, data models.InterventoComplete) (*models.Intervento, error)
	AddAttivita(ctx context.Context, id int64, data models.AttivitaCreate) (*models.Attivita, error)
	Delete(ctx context.Context, id int64) error
	Sessions(ctx context.Context, id int64) ([]models.SessioneLavoro, error)
	AddSession(ctx context.Context, id int64, data models.SessioneCreate) (*models.SessioneLavoro, error)
	UpdateSession(ctx context.Context, id, sessionID int64, data models.SessioneUpdate) (*models.SessioneLavoro, error)
	DeleteSession(ctx context.Context, id, sessionID int64) error
	Rows(ctx context.Context, id int64) ([]models.RigaAttivita, error)
	UpdateRow(ctx context.Context, id, rowID int64, data models.RigaAttivitaUpdate) (*models.RigaAttivita, error)
	DeleteRow(ctx context.Context, id, rowID int64) error
}

type TechniciansAPI interface {
	List(ctx context.Context, filters models.TechnicianFilters) (*models.TechnicianListResponse, error)
	Get(ctx context.Context, id int64) (*models.Technician, error)
	Create(ctx context.Context, data models.TechnicianCreate) (*models.Technician, error)
	Update(ctx context.Context, id int64, data models.TechnicianUpdate) (*models.Technician, error)
	Delete(ctx context.Context, id int64) error
}

type LookupAPI interface {
	Channels(ctx context.Context) ([]models.Channel, error)
	Priorities(ctx context.Context) ([]models.Priority, error)
	TicketStates(ctx context.Context) ([]models.State, error)
	InterventionStates(ctx context.Context) ([]models.State, error)
	InterventionTypes(ctx context.Context) ([]models.InterventionType, error)
	ActivityCategories(ctx context.Context) ([]models.ActivityCategory, error)
	InterventionOrigins(ctx context.Context) ([]models.InterventionOrigin, error)
	Departments(ctx context.Context) ([]models.Department, error)
	UserRoles(ctx context.Context) ([]models.UserRole, error)
}

type DashboardAPI interface {
	Get(ctx context.Context) (*models.DashboardData, error)
}

// Backend groups the remote API resources used by one browser session
type Backend struct {
	Auth          AuthAPI
	Clients       ClientsAPI
	Tickets       TicketsAPI
	Interventions InterventionsAPI
	Technicians   TechniciansAPI
	Lookup        LookupAPI
	Dashboard     DashboardAPI
}

// NewBackend exposes an API client through the service interfaces
func NewBackend(c *apiclient.Client) *Backend {
	return &Backend{
		Auth:          c.Auth,
		Clients:       c.Clients,
		Tickets:       c.Tickets,
		Interventions: c.Interventions,
		Technicians:   c.Technicians,
		Lookup:        c.Lookup,
		Dashboard:     c.Dashboard,
	}
}

// SessionStoreInterface defines the contract for the authentication state of
// one browser session
type SessionStoreInterface interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	LoadUser(ctx context.Context) error
	State() models.SessionState
}

// SessionManagerInterface defines the contract for the browser-session registry
type SessionManagerInterface interface {
	Resolve(ctx context.Context, sessionID string) (*BrowserSession, error)
	Sweep(ctx context.Context, now time.Time) (int, error)
	Count() int
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetSessionManager() SessionManagerInterface
}
