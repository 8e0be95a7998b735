package controller

import (
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgInterventionNotFound = "Intervento non trovato"
	interventionsHref       = "/interventions"
)

type InterventionController struct {
	handler
}

func NewInterventionController(log logger.Logger) *InterventionController {
	return &InterventionController{handler: newHandler(log)}
}

// ListInterventions handles GET /interventions
// @Summary List interventions
// @Tags Interventions
// @Produce json
// @Param page query int false "Page, from 1"
// @Param search query string false "Free-text search"
// @Param stato_id query int false "State"
// @Param tipo_intervento_id query int false "Type"
// @Param tecnico_id query int false "Technician"
// @Param cliente_id query int false "Client"
// @Param ticket_id query int false "Ticket"
// @Param data_from query string false "From, ISO-8601"
// @Param data_to query string false "To, ISO-8601"
// @Success 200 {object} models.APIResponse{data=models.InterventionListView}
// @Router /interventions [get]
func (h *InterventionController) ListInterventions(c *gin.Context) {
	q := newQueryReader(c)
	query := services.ListQuery[models.InterventoFilters]{
		Page:   q.Int("page"),
		Search: q.String("search"),
		Filters: models.InterventoFilters{
			StatoID:          q.ID("stato_id"),
			TipoInterventoID: q.ID("tipo_intervento_id"),
			TecnicoID:        q.ID("tecnico_id"),
			ClienteID:        q.ID("cliente_id"),
			TicketID:         q.ID("ticket_id"),
			DataFrom:         q.String("data_from"),
			DataTo:           q.String("data_to"),
		},
	}
	if err := q.Err(); err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}

	view, err := h.pages(c).Interventions.List(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}

// FilterOptions handles GET /interventions/filter-options
// @Summary Intervention list filter choices
// @Tags Interventions
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.InterventionFilterOptions}
// @Router /interventions/filter-options [get]
func (h *InterventionController) FilterOptions(c *gin.Context) {
	opts, err := h.pages(c).Interventions.FilterOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", opts)
}

// GetIntervention handles GET /interventions/:id
// @Summary Intervention detail
// @Tags Interventions
// @Produce json
// @Param id path int true "Intervention ID"
// @Param tab query string false "dettagli, sessioni or righe"
// @Success 200 {object} models.APIResponse{data=models.InterventionDetailView}
// @Failure 404 {object} models.APIResponse{data=models.NotFoundView}
// @Router /interventions/{id} [get]
func (h *InterventionController) GetIntervention(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}

	view, err := h.pages(c).Interventions.Detail(c.Request.Context(), id, c.Query("tab"))
	if err != nil {
		h.detailFailed(c, err, msgInterventionNotFound, interventionsHref)
		return
	}
	success(c, http.StatusOK, "", view)
}

// ChangeState handles PATCH /interventions/:id/state
// @Summary Change intervention state
// @Tags Interventions
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param request body models.StateChange true "New state"
// @Success 200 {object} models.APIResponse{data=models.InterventionDetailView}
// @Router /interventions/{id}/state [patch]
func (h *InterventionController) ChangeState(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}
	var req models.StateChange
	if !h.bindJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Interventions.ChangeState(c.Request.Context(), id, req.StatoID)
	if err != nil {
		h.fail(c, err, services.MsgStateUpdate)
		return
	}
	success(c, http.StatusOK, "Stato aggiornato", view)
}

// Start handles POST /interventions/:id/start
// @Summary Start the intervention
// @Tags Interventions
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param request body models.InterventoStart false "Start note"
// @Success 200 {object} models.APIResponse{data=models.InterventionDetailView}
// @Router /interventions/{id}/start [post]
func (h *InterventionController) Start(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}
	var req models.InterventoStart
	if c.Request.ContentLength != 0 && !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Interventions.Start(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgInterventoStart)
		return
	}
	success(c, http.StatusOK, "Intervento avviato", view)
}

// Complete handles POST /interventions/:id/complete
// @Summary Complete the intervention
// @Description descrizione_lavoro is required, the signature fields are optional
// @Tags Interventions
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param request body models.InterventoComplete true "Work report"
// @Success 200 {object} models.APIResponse{data=models.InterventionDetailView}
// @Failure 400 {object} models.APIResponse "Missing work description"
// @Router /interventions/{id}/complete [post]
func (h *InterventionController) Complete(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}
	var req models.InterventoComplete
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Interventions.Complete(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgInterventoEnd)
		return
	}
	success(c, http.StatusOK, "Intervento completato", view)
}

// DeleteIntervention handles DELETE /interventions/:id
// @Summary Delete an intervention
// @Tags Interventions
// @Produce json
// @Param id path int true "Intervention ID"
// @Success 200 {object} models.APIResponse
// @Router /interventions/{id} [delete]
func (h *InterventionController) DeleteIntervention(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}

	if err := h.pages(c).Interventions.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, services.MsgInterventoDelete)
		return
	}
	success(c, http.StatusOK, "Intervento eliminato", gin.H{"id": id, "redirect": interventionsHref})
}

// ListSessions handles GET /interventions/:id/sessions
// @Summary Work sessions of the intervention
// @Tags Intervention Sessions
// @Produce json
// @Param id path int true "Intervention ID"
// @Success 200 {object} models.APIResponse{data=models.SessionsView}
// @Router /interventions/{id}/sessions [get]
func (h *InterventionController) ListSessions(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}

	view, err := h.pages(c).Interventions.Sessions(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}

// SessionDraft handles GET /interventions/:id/sessions/draft
// @Summary Prefilled session editor
// @Description Without session_id the draft is a new session today at 09:00
// @Tags Intervention Sessions
// @Produce json
// @Param id path int true "Intervention ID"
// @Param session_id query int false "Session to edit"
// @Success 200 {object} models.APIResponse{data=models.SessioneCreate}
// @Failure 404 {object} models.APIResponse
// @Router /interventions/{id}/sessions/draft [get]
func (h *InterventionController) SessionDraft(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}
	q := newQueryReader(c)
	var sessionID int64
	if sid := q.ID("session_id"); sid != nil {
		sessionID = *sid
	}
	if err := q.Err(); err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}

	draft, err := h.pages(c).Interventions.SessionDraft(c.Request.Context(), id, sessionID)
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", draft)
}

// AddSession handles POST /interventions/:id/sessions
// @Summary Add a work session
// @Tags Intervention Sessions
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param request body models.SessioneCreate true "Session"
// @Success 201 {object} models.APIResponse{data=models.SessionsView}
// @Router /interventions/{id}/sessions [post]
func (h *InterventionController) AddSession(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}
	var req models.SessioneCreate
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Interventions.AddSession(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgSessionSave)
		return
	}
	success(c, http.StatusCreated, "Sessione salvata", view)
}

// UpdateSession handles PATCH /interventions/:id/sessions/:sid
// @Summary Update a work session
// @Tags Intervention Sessions
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param sid path int true "Session ID"
// @Param request body models.SessioneUpdate true "Changed fields"
// @Success 200 {object} models.APIResponse{data=models.SessionsView}
// @Router /interventions/{id}/sessions/{sid} [patch]
func (h *InterventionController) UpdateSession(c *gin.Context) {
	id, sid, ok := h.childID(c, "sid")
	if !ok {
		return
	}
	var req models.SessioneUpdate
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Interventions.UpdateSession(c.Request.Context(), id, sid, req)
	if err != nil {
		h.fail(c, err, services.MsgSessionSave)
		return
	}
	success(c, http.StatusOK, "Sessione salvata", view)
}

// DeleteSession handles DELETE /interventions/:id/sessions/:sid
// @Summary Delete a work session
// @Tags Intervention Sessions
// @Produce json
// @Param id path int true "Intervention ID"
// @Param sid path int true "Session ID"
// @Success 200 {object} models.APIResponse{data=models.SessionsView}
// @Router /interventions/{id}/sessions/{sid} [delete]
func (h *InterventionController) DeleteSession(c *gin.Context) {
	id, sid, ok := h.childID(c, "sid")
	if !ok {
		return
	}

	view, err := h.pages(c).Interventions.DeleteSession(c.Request.Context(), id, sid)
	if err != nil {
		h.fail(c, err, services.MsgSessionDelete)
		return
	}
	success(c, http.StatusOK, "Sessione eliminata", view)
}

// ListRows handles GET /interventions/:id/rows
// @Summary Billable rows of the intervention
// @Tags Intervention Rows
// @Produce json
// @Param id path int true "Intervention ID"
// @Success 200 {object} models.APIResponse{data=models.RowsView}
// @Router /interventions/{id}/rows [get]
func (h *InterventionController) ListRows(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}

	view, err := h.pages(c).Interventions.Rows(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}

// PreviewRow handles POST /interventions/:id/rows/preview
// @Summary Amount of a row being edited
// @Description quantity × unit price less the discount, rounded to cents. Nothing is saved.
// @Tags Intervention Rows
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param request body models.RigaAttivitaUpdate true "Draft row"
// @Success 200 {object} models.APIResponse{data=models.RowPreview}
// @Router /interventions/{id}/rows/preview [post]
func (h *InterventionController) PreviewRow(c *gin.Context) {
	var req models.RigaAttivitaUpdate
	if !h.decodeJSON(c, &req) {
		return
	}
	success(c, http.StatusOK, "", services.PreviewRow(req))
}

// ActivityDraft handles GET /interventions/:id/rows/draft
// @Summary Defaults for a new activity
// @Description First activity category with its default price and a duration of 60 minutes, plus the categories to choose from
// @Tags Intervention Rows
// @Produce json
// @Param id path int true "Intervention ID"
// @Success 200 {object} models.APIResponse{data=models.ActivityDraftView}
// @Router /interventions/{id}/rows/draft [get]
func (h *InterventionController) ActivityDraft(c *gin.Context) {
	if _, ok := h.interventionID(c); !ok {
		return
	}

	view, err := h.pages(c).Interventions.ActivityDraft(c.Request.Context())
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}

// AddActivity handles POST /interventions/:id/rows
// @Summary Add an activity
// @Description The backend records the activity as a billable row; the reloaded rows are returned
// @Tags Intervention Rows
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param request body models.AttivitaCreate true "Activity"
// @Success 201 {object} models.APIResponse{data=models.RowsView}
// @Failure 400 {object} models.APIResponse "Missing category or description"
// @Router /interventions/{id}/rows [post]
func (h *InterventionController) AddActivity(c *gin.Context) {
	id, ok := h.interventionID(c)
	if !ok {
		return
	}
	var req models.AttivitaCreate
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Interventions.AddActivity(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, services.MsgActivityAdd)
		return
	}
	success(c, http.StatusCreated, "Attività aggiunta", view)
}

// UpdateRow handles PATCH /interventions/:id/rows/:rid
// @Summary Update a billable row
// @Tags Intervention Rows
// @Accept json
// @Produce json
// @Param id path int true "Intervention ID"
// @Param rid path int true "Row ID"
// @Param request body models.RigaAttivitaUpdate true "Changed fields"
// @Success 200 {object} models.APIResponse{data=models.RowsView}
// @Router /interventions/{id}/rows/{rid} [patch]
func (h *InterventionController) UpdateRow(c *gin.Context) {
	id, rid, ok := h.childID(c, "rid")
	if !ok {
		return
	}
	var req models.RigaAttivitaUpdate
	if !h.decodeJSON(c, &req) {
		return
	}

	view, err := h.pages(c).Interventions.UpdateRow(c.Request.Context(), id, rid, req)
	if err != nil {
		h.fail(c, err, services.MsgRowUpdate)
		return
	}
	success(c, http.StatusOK, "Riga aggiornata", view)
}

// DeleteRow handles DELETE /interventions/:id/rows/:rid
// @Summary Delete a billable row
// @Tags Intervention Rows
// @Produce json
// @Param id path int true "Intervention ID"
// @Param rid path int true "Row ID"
// @Success 200 {object} models.APIResponse{data=models.RowsView}
// @Router /interventions/{id}/rows/{rid} [delete]
func (h *InterventionController) DeleteRow(c *gin.Context) {
	id, rid, ok := h.childID(c, "rid")
	if !ok {
		return
	}

	view, err := h.pages(c).Interventions.DeleteRow(c.Request.Context(), id, rid)
	if err != nil {
		h.fail(c, err, services.MsgRowDelete)
		return
	}
	success(c, http.StatusOK, "Riga eliminata", view)
}

func (h *InterventionController) interventionID(c *gin.Context) (int64, bool) {
	id, err := pathID(c, "id")
	if err != nil {
		h.detailFailed(c, err, msgInterventionNotFound, interventionsHref)
		return 0, false
	}
	return id, true
}

// childID reads the intervention id and the id of one of its sessions or rows
func (h *InterventionController) childID(c *gin.Context, name string) (int64, int64, bool) {
	id, ok := h.interventionID(c)
	if !ok {
		return 0, 0, false
	}
	child, err := pathID(c, name)
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return 0, 0, false
	}
	return id, child, true
}
