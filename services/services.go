package services

import (
	"daassist-web/models"
	"daassist-web/repository"
	"daassist-web/utils/logger"
)

// Pages groups the page services of one browser session
type Pages struct {
	Clients       *ClientService
	Tickets       *TicketService
	Interventions *InterventionService
	Technicians   *TechnicianService
	Dashboard     *DashboardService
	Calendar      *CalendarService
}

// NewPages builds the page services over a session backend
func NewPages(backend *Backend, log logger.Logger) *Pages {
	return &Pages{
		Clients:       NewClientService(backend, log),
		Tickets:       NewTicketService(backend, log),
		Interventions: NewInterventionService(backend, log),
		Technicians:   NewTechnicianService(backend, log),
		Dashboard:     NewDashboardService(backend, log),
		Calendar:      NewCalendarService(backend, log),
	}
}

// Service implements ServiceContainerInterface
type Service struct {
	sessionManager *SessionManager
}

// NewService creates a new service container with all dependencies injected
func NewService(
	repoContainer repository.RepositoryContainerInterface,
	newBackend BackendFactory,
	config *models.Config,
	logger logger.Logger,
) ServiceContainerInterface {
	return &Service{
		sessionManager: NewSessionManager(repoContainer.GetSessionRepository(), newBackend, config, logger),
	}
}

// GetSessionManager returns the browser-session registry
func (s *Service) GetSessionManager() SessionManagerInterface {
	return s.sessionManager
}
