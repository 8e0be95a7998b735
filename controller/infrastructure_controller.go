package controller

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WorkerServiceInterface is the part of the background service the HTTP
// layer reports on
type WorkerServiceInterface interface {
	Sweep(ctx context.Context) (*models.ExecutionResult, error)
	GetHealthStatus() models.WorkerHealth
}

// SessionCounter reports the number of live browser sessions
type SessionCounter interface {
	Count() int
}

// HealthResponse is the body of /health
type HealthResponse struct {
	Status   string              `json:"status"`
	Service  string              `json:"service"`
	Version  string              `json:"version"`
	Sessions int                 `json:"sessions"`
	Worker   models.WorkerHealth `json:"worker"`
}

type InfrastructureController struct {
	config   *models.Config
	worker   WorkerServiceInterface
	sessions SessionCounter
	logger   logger.Logger
}

func NewInfrastructureController(cfg *models.Config, worker WorkerServiceInterface, sessions SessionCounter, logger logger.Logger) *InfrastructureController {
	return &InfrastructureController{
		config:   cfg,
		worker:   worker,
		sessions: sessions,
		logger:   logger,
	}
}

// Health handles GET /health
// @Summary Service health
// @Description Reports degraded when the session sweeper is not scheduled or its last run failed
// @Tags Infrastructure
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthResponse} "Healthy"
// @Failure 503 {object} models.APIResponse{data=HealthResponse} "Degraded"
// @Router /health [get]
func (h *InfrastructureController) Health(c *gin.Context) {
	workerHealth := h.worker.GetHealthStatus()
	resp := HealthResponse{
		Status:   "healthy",
		Service:  h.config.AppName,
		Version:  h.config.AppVersion,
		Sessions: h.sessions.Count(),
		Worker:   workerHealth,
	}

	code, status := http.StatusOK, "success"
	if !workerHealth.Running || (workerHealth.LastRun != nil && workerHealth.LastRun.Status == models.StatusFailed) {
		resp.Status = "degraded"
		code, status = http.StatusServiceUnavailable, "error"
	}

	c.JSON(code, models.APIResponse{
		Status:  status,
		Code:    code,
		Message: "Service is " + resp.Status,
		Data:    resp,
	})
}

// GetWorkerStatus handles GET /infrastructure/worker/status
// @Summary Session sweeper status
// @Tags Infrastructure
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.WorkerHealth}
// @Failure 401 {object} models.APIResponse "Login required"
// @Router /infrastructure/worker/status [get]
func (h *InfrastructureController) GetWorkerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   h.worker.GetHealthStatus(),
	})
}

// RunSweep handles POST /infrastructure/worker/sweep
// @Summary Sweep idle sessions now
// @Tags Infrastructure
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ExecutionResult} "Sweep completed"
// @Failure 409 {object} models.APIResponse "A sweep is already running"
// @Failure 500 {object} models.APIResponse{data=models.ExecutionResult} "Sweep failed"
// @Router /infrastructure/worker/sweep [post]
func (h *InfrastructureController) RunSweep(c *gin.Context) {
	result, err := h.worker.Sweep(c.Request.Context())
	if err != nil {
		code := http.StatusInternalServerError
		if result == nil {
			code = http.StatusConflict
		}
		h.logger.Warnf("Manual sweep failed: %v", err)
		c.JSON(code, models.APIResponse{
			Status:  "error",
			Code:    code,
			Message: "Session sweep failed",
			Data:    result,
			Error: &models.APIError{
				Type:    models.ErrorTypeInternal,
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Session sweep completed",
		Data:    result,
	})
}
