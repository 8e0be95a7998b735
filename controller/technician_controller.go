package controller

import (
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TechnicianController struct {
	handler
}

func NewTechnicianController(log logger.Logger) *TechnicianController {
	return &TechnicianController{handler: newHandler(log)}
}

// ListTechnicians handles GET /technicians
// @Summary List technicians
// @Description Shows active technicians unless attivo is given
// @Tags Technicians
// @Produce json
// @Param page query int false "Page, from 1"
// @Param search query string false "Free-text search"
// @Param reparto_id query int false "Department"
// @Param ruolo_id query int false "Role"
// @Param attivo query bool false "Active flag"
// @Success 200 {object} models.APIResponse{data=models.TechnicianListView}
// @Router /technicians [get]
func (h *TechnicianController) ListTechnicians(c *gin.Context) {
	q := newQueryReader(c)
	query := services.ListQuery[models.TechnicianFilters]{
		Page:   q.Int("page"),
		Search: q.String("search"),
		Filters: models.TechnicianFilters{
			RepartoID: q.ID("reparto_id"),
			RuoloID:   q.ID("ruolo_id"),
			Attivo:    q.Bool("attivo"),
		},
	}
	if err := q.Err(); err != nil {
		h.fail(c, err, services.MsgTechniciansLoad)
		return
	}

	view, err := h.pages(c).Technicians.List(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err, services.MsgTechniciansLoad)
		return
	}
	success(c, http.StatusOK, "", view)
}

// Draft handles GET /technicians/draft
// @Summary Defaults of the new-technician form
// @Tags Technicians
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.TechnicianCreate}
// @Router /technicians/draft [get]
func (h *TechnicianController) Draft(c *gin.Context) {
	draft, err := h.pages(c).Technicians.Draft(c.Request.Context())
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", draft)
}

// CreateTechnician handles POST /technicians
// @Summary Create a technician
// @Tags Technicians
// @Accept json
// @Produce json
// @Param request body models.TechnicianCreate true "Technician"
// @Success 201 {object} models.APIResponse{data=models.Technician}
// @Failure 400 {object} models.APIResponse "Missing fields"
// @Router /technicians [post]
func (h *TechnicianController) CreateTechnician(c *gin.Context) {
	var req models.TechnicianCreate
	if !h.decodeJSON(c, &req) {
		return
	}

	tech, err := h.pages(c).Technicians.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, services.MsgTechnicianSave)
		return
	}
	success(c, http.StatusCreated, "Tecnico creato", tech)
}

// UpdateTechnician handles PUT /technicians/:id
// @Summary Update a technician
// @Tags Technicians
// @Accept json
// @Produce json
// @Param id path int true "Technician ID"
// @Param request body models.TechnicianUpdate true "Changed fields"
// @Success 200 {object} models.APIResponse{data=models.Technician}
// @Router /technicians/{id} [put]
func (h *TechnicianController) UpdateTechnician(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err, services.MsgTechnicianSave)
		return
	}
	var req models.TechnicianUpdate
	if !h.decodeJSON(c, &req) {
		return
	}

	tech, err := h.pages(c).Technicians.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgTechnicianSave)
		return
	}
	success(c, http.StatusOK, "Tecnico aggiornato", tech)
}

// ToggleActive handles POST /technicians/:id/toggle-active
// @Summary Activate or deactivate a technician
// @Tags Technicians
// @Produce json
// @Param id path int true "Technician ID"
// @Success 200 {object} models.APIResponse{data=models.Technician}
// @Router /technicians/{id}/toggle-active [post]
func (h *TechnicianController) ToggleActive(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err, services.MsgTechnicianToggle)
		return
	}

	tech, err := h.pages(c).Technicians.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, services.MsgTechnicianToggle)
		return
	}
	success(c, http.StatusOK, "Stato tecnico aggiornato", tech)
}

// DeleteTechnician handles DELETE /technicians/:id
// @Summary Delete a technician
// @Tags Technicians
// @Produce json
// @Param id path int true "Technician ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse "Technician not found"
// @Router /technicians/{id} [delete]
func (h *TechnicianController) DeleteTechnician(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err, services.MsgTechnicianDelete)
		return
	}

	if err := h.pages(c).Technicians.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, services.MsgTechnicianDelete)
		return
	}
	success(c, http.StatusOK, "Tecnico eliminato", gin.H{"id": id})
}
