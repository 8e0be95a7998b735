package controller

import (
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ClientController struct {
	handler
}

func NewClientController(log logger.Logger) *ClientController {
	return &ClientController{handler: newHandler(log)}
}

// ListClients handles GET /clients
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param page query int false "Page, from 1"
// @Param search query string false "Free-text search"
// @Param attivo query bool false "Active flag"
// @Success 200 {object} models.APIResponse{data=models.ClientListView}
// @Failure 400 {object} models.APIResponse "Invalid filter"
// @Failure 502 {object} models.APIResponse "Backend unreachable"
// @Router /clients [get]
func (h *ClientController) ListClients(c *gin.Context) {
	q := newQueryReader(c)
	query := services.ListQuery[models.ClienteFilters]{
		Page:    q.Int("page"),
		Search:  q.String("search"),
		Filters: models.ClienteFilters{Attivo: q.Bool("attivo")},
	}
	if err := q.Err(); err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}

	view, err := h.pages(c).Clients.List(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}

// GetClient handles GET /clients/:id
// @Summary Client detail
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Param tab query string false "info, sedi, contatti or contratti"
// @Success 200 {object} models.APIResponse{data=models.ClientDetailView}
// @Failure 404 {object} models.APIResponse{data=models.NotFoundView}
// @Router /clients/{id} [get]
func (h *ClientController) GetClient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err == nil {
		var view *models.ClientDetailView
		view, err = h.pages(c).Clients.Detail(c.Request.Context(), id, c.Query("tab"))
		if err == nil {
			success(c, http.StatusOK, "", view)
			return
		}
	}
	h.detailFailed(c, err, "Cliente non trovato", "/clients")
}
