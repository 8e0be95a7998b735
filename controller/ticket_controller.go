package controller

import (
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgTicketNotFound = "Ticket non trovato"
	ticketsHref       = "/tickets"
)

type TicketController struct {
	handler
}

func NewTicketController(log logger.Logger) *TicketController {
	return &TicketController{handler: newHandler(log)}
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Tags Tickets
// @Produce json
// @Param page query int false "Page, from 1"
// @Param search query string false "Free-text search"
// @Param stato_id query int false "State"
// @Param priorita_id query int false "Priority"
// @Param tecnico_id query int false "Technician"
// @Param tecnico_assegnato_id query int false "Assigned technician"
// @Param cliente_id query int false "Client"
// @Success 200 {object} models.APIResponse{data=models.TicketListView}
// @Failure 400 {object} models.APIResponse "Invalid filter"
// @Router /tickets [get]
func (h *TicketController) ListTickets(c *gin.Context) {
	q := newQueryReader(c)
	query := services.ListQuery[models.TicketFilters]{
		Page:   q.Int("page"),
		Search: q.String("search"),
		Filters: models.TicketFilters{
			StatoID:            q.ID("stato_id"),
			PrioritaID:         q.ID("priorita_id"),
			TecnicoID:          q.ID("tecnico_id"),
			TecnicoAssegnatoID: q.ID("tecnico_assegnato_id"),
			ClienteID:          q.ID("cliente_id"),
		},
	}
	if err := q.Err(); err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}

	view, err := h.pages(c).Tickets.List(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}

// FilterOptions handles GET /tickets/filter-options
// @Summary Ticket list filter choices
// @Tags Tickets
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.TicketFilterOptions}
// @Router /tickets/filter-options [get]
func (h *TicketController) FilterOptions(c *gin.Context) {
	opts, err := h.pages(c).Tickets.FilterOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", opts)
}

// GetTicket handles GET /tickets/:id
// @Summary Ticket detail
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Failure 404 {object} models.APIResponse{data=models.NotFoundView}
// @Router /tickets/{id} [get]
func (h *TicketController) GetTicket(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.detailFailed(c, err, msgTicketNotFound, ticketsHref)
		return
	}

	view, err := h.pages(c).Tickets.Detail(c.Request.Context(), id)
	if err != nil {
		h.detailFailed(c, err, msgTicketNotFound, ticketsHref)
		return
	}
	success(c, http.StatusOK, "", view)
}

// ChangeState handles PATCH /tickets/:id/state
// @Summary Change ticket state
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body models.StateChange true "New state"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Failure 400 {object} models.APIResponse
// @Router /tickets/{id}/state [patch]
func (h *TicketController) ChangeState(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}
	var req models.StateChange
	if !h.bindJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Tickets.ChangeState(c.Request.Context(), id, req.StatoID)
	if err != nil {
		h.fail(c, err, services.MsgStateUpdate)
		return
	}
	success(c, http.StatusOK, "Stato aggiornato", view)
}

// SetTechnician handles PATCH /tickets/:id/technician
// @Summary Set or clear the assigned technician
// @Description A null tecnico_id unassigns the ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body models.TechnicianSelection true "Technician, null to unassign"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Router /tickets/{id}/technician [patch]
func (h *TicketController) SetTechnician(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}
	var req models.TechnicianSelection
	if !h.bindJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Tickets.SetTechnician(c.Request.Context(), id, req.TecnicoID)
	if err != nil {
		h.fail(c, err, services.MsgTicketAssign)
		return
	}
	success(c, http.StatusOK, "Tecnico aggiornato", view)
}

// Assign handles POST /tickets/:id/assign
// @Summary Assign the ticket to a technician
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body models.TicketAssign true "Technician"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Router /tickets/{id}/assign [post]
func (h *TicketController) Assign(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}
	var req models.TicketAssign
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Tickets.Assign(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgTicketAssign)
		return
	}
	success(c, http.StatusOK, "Ticket assegnato", view)
}

// Take handles POST /tickets/:id/take
// @Summary Take the ticket in charge
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Router /tickets/{id}/take [post]
func (h *TicketController) Take(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}

	view, err := h.pages(c).Tickets.Take(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, services.MsgTicketTake)
		return
	}
	success(c, http.StatusOK, "Ticket preso in carico", view)
}

// Close handles POST /tickets/:id/close
// @Summary Close the ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body models.TicketClose true "Outcome and note"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Failure 400 {object} models.APIResponse "Unknown outcome"
// @Router /tickets/{id}/close [post]
func (h *TicketController) Close(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}
	var req models.TicketClose
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Tickets.Close(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgTicketClose)
		return
	}
	success(c, http.StatusOK, "Ticket chiuso", view)
}

// CreateIntervention handles POST /tickets/:id/create-intervention
// @Summary Create an intervention from the ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 201 {object} models.APIResponse{data=models.CreateInterventionResult}
// @Router /tickets/{id}/create-intervention [post]
func (h *TicketController) CreateIntervention(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}

	result, err := h.pages(c).Tickets.CreateIntervention(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, services.MsgInterventoCreate)
		return
	}
	success(c, http.StatusCreated, result.Message, result)
}

// ScheduleIntervention handles POST /tickets/:id/schedule-intervention
// @Summary Request a scheduled intervention for the ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 201 {object} models.APIResponse{data=models.ScheduleView}
// @Router /tickets/{id}/schedule-intervention [post]
func (h *TicketController) ScheduleIntervention(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}

	view, err := h.pages(c).Tickets.ScheduleIntervention(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, services.MsgScheduleRequest)
		return
	}
	success(c, http.StatusCreated, view.Result.Message, view)
}

// AddNote handles POST /tickets/:id/notes
// @Summary Add an internal note
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body models.TicketNote true "Note"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Router /tickets/{id}/notes [post]
func (h *TicketController) AddNote(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}
	var req models.TicketNote
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Tickets.AddNote(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgNoteAdd)
		return
	}
	success(c, http.StatusOK, "Nota aggiunta", view)
}

// AddMessage handles POST /tickets/:id/messages
// @Summary Send a message to the requester
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body models.TicketMessage true "Message"
// @Success 200 {object} models.APIResponse{data=models.TicketDetailView}
// @Router /tickets/{id}/messages [post]
func (h *TicketController) AddMessage(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}
	var req models.TicketMessage
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Tickets.AddMessage(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgMessageAdd)
		return
	}
	success(c, http.StatusOK, "Messaggio inviato", view)
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Delete a ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} models.APIResponse
// @Router /tickets/{id} [delete]
func (h *TicketController) DeleteTicket(c *gin.Context) {
	id, ok := h.ticketID(c)
	if !ok {
		return
	}

	if err := h.pages(c).Tickets.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, services.MsgTicketDelete)
		return
	}
	success(c, http.StatusOK, "Ticket eliminato", gin.H{"id": id, "redirect": ticketsHref})
}

func (h *TicketController) ticketID(c *gin.Context) (int64, bool) {
	id, err := pathID(c, "id")
	if err != nil {
		h.detailFailed(c, err, msgTicketNotFound, ticketsHref)
		return 0, false
	}
	return id, true
}
