package controller

import (
	"daassist-web/middelware"
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"daassist-web/utils/swagger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Auth           *AuthController
	Pages          *PageController
	Clients        *ClientController
	Tickets        *TicketController
	Interventions  *InterventionController
	Technicians    *TechnicianController
	Forms          *FormController
	Infrastructure *InfrastructureController

	session *middelware.SessionMiddleware
	config  *models.Config
	logger  logger.Logger
}

func NewController(cfg *models.Config, svc services.ServiceContainerInterface, worker WorkerServiceInterface, log logger.Logger) *Controller {
	manager := svc.GetSessionManager()

	return &Controller{
		Auth:           NewAuthController(log),
		Pages:          NewPageController(log),
		Clients:        NewClientController(log),
		Tickets:        NewTicketController(log),
		Interventions:  NewInterventionController(log),
		Technicians:    NewTechnicianController(log),
		Forms:          NewFormController(log),
		Infrastructure: NewInfrastructureController(cfg, worker, manager, log),
		session:        middelware.NewSessionMiddleware(cfg, manager, log),
		config:         cfg,
		logger:         log,
	}
}

// RegisterRoutes mounts the middleware chain and every endpoint on r
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	logging := middelware.NewLoggingMiddleware(c.logger, "/health")
	r.Use(logging.Recovery(), logging.StructuredLogger(), middelware.NewCORSMiddleware(c.config).CORS())

	// Health check endpoint (no session required)
	r.GET("/health", c.Infrastructure.Health)

	swaggerConfig := swagger.SwaggerConfig{
		Title:         c.config.AppName + " API",
		SwaggerDocURL: "/swagger/doc.json",
		AuthURL:       c.config.BasePath + "/auth/login",
	}
	r.GET("/swagger", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/index.html", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/doc.json", swagger.ServeDoc())

	app := r.Group(c.config.BasePath, c.session.Session())

	// Session routes - login not required
	auth := app.Group("/auth")
	auth.POST("/login", c.Auth.Login)
	auth.POST("/logout", c.Auth.Logout)
	auth.GET("/session", c.Auth.Session)
	app.GET("/layout", c.Pages.Layout)

	// Everything else needs a logged user
	protected := app.Group("", middelware.RequireAuth())

	protected.GET("/dashboard", c.Pages.Dashboard)
	protected.GET("/calendar", c.Pages.Calendar)

	clients := protected.Group("/clients")
	clients.GET("", c.Clients.ListClients)
	clients.GET("/:id", c.Clients.GetClient)

	tickets := protected.Group("/tickets")
	tickets.GET("", c.Tickets.ListTickets)
	tickets.GET("/filter-options", c.Tickets.FilterOptions)
	tickets.GET("/:id", c.Tickets.GetTicket)
	tickets.DELETE("/:id", c.Tickets.DeleteTicket)
	tickets.PATCH("/:id/state", c.Tickets.ChangeState)
	tickets.PATCH("/:id/technician", c.Tickets.SetTechnician)
	tickets.POST("/:id/assign", c.Tickets.Assign)
	tickets.POST("/:id/take", c.Tickets.Take)
	tickets.POST("/:id/close", c.Tickets.Close)
	tickets.POST("/:id/create-intervention", c.Tickets.CreateIntervention)
	tickets.POST("/:id/schedule-intervention", c.Tickets.ScheduleIntervention)
	tickets.POST("/:id/notes", c.Tickets.AddNote)
	tickets.POST("/:id/messages", c.Tickets.AddMessage)

	interventions := protected.Group("/interventions")
	interventions.GET("", c.Interventions.ListInterventions)
	interventions.GET("/filter-options", c.Interventions.FilterOptions)
	interventions.GET("/:id", c.Interventions.GetIntervention)
	interventions.DELETE("/:id", c.Interventions.DeleteIntervention)
	interventions.PATCH("/:id/state", c.Interventions.ChangeState)
	interventions.POST("/:id/start", c.Interventions.Start)
	interventions.POST("/:id/complete", c.Interventions.Complete)
	interventions.GET("/:id/sessions", c.Interventions.ListSessions)
	interventions.POST("/:id/sessions", c.Interventions.AddSession)
	interventions.GET("/:id/sessions/draft", c.Interventions.SessionDraft)
	interventions.PATCH("/:id/sessions/:sid", c.Interventions.UpdateSession)
	interventions.DELETE("/:id/sessions/:sid", c.Interventions.DeleteSession)
	interventions.GET("/:id/rows", c.Interventions.ListRows)
	interventions.POST("/:id/rows", c.Interventions.AddActivity)
	interventions.GET("/:id/rows/draft", c.Interventions.ActivityDraft)
	interventions.POST("/:id/rows/preview", c.Interventions.PreviewRow)
	interventions.PATCH("/:id/rows/:rid", c.Interventions.UpdateRow)
	interventions.DELETE("/:id/rows/:rid", c.Interventions.DeleteRow)

	technicians := protected.Group("/technicians")
	technicians.GET("", c.Technicians.ListTechnicians)
	technicians.GET("/draft", c.Technicians.Draft)
	technicians.POST("", c.Technicians.CreateTechnician)
	technicians.PUT("/:id", c.Technicians.UpdateTechnician)
	technicians.DELETE("/:id", c.Technicians.DeleteTechnician)
	technicians.POST("/:id/toggle-active", c.Technicians.ToggleActive)

	forms := protected.Group("/forms")
	forms.GET("/ticket", c.Forms.OpenTicketForm)
	forms.DELETE("/ticket", c.Forms.CloseTicketForm)
	forms.PUT("/ticket/client", c.Forms.SelectTicketClient)
	forms.POST("/ticket/submit", c.Forms.SubmitTicketForm)
	forms.GET("/intervention", c.Forms.OpenInterventionForm)
	forms.DELETE("/intervention", c.Forms.CloseInterventionForm)
	forms.PUT("/intervention/client", c.Forms.SelectInterventionClient)
	forms.POST("/intervention/submit", c.Forms.SubmitInterventionForm)

	infra := protected.Group("/infrastructure")
	infra.GET("/worker/status", c.Infrastructure.GetWorkerStatus)
	infra.POST("/worker/sweep", c.Infrastructure.RunSweep)
}

// NewServer builds the HTTP server for the configured host and port
func (c *Controller) NewServer(r *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              c.config.AppHost + ":" + c.config.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
