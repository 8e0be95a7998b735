package controller

import (
	"daassist-web/middelware"
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FormController drives the create-ticket and create-intervention forms
// kept in the browser session
type FormController struct {
	handler
}

func NewFormController(log logger.Logger) *FormController {
	return &FormController{handler: newHandler(log)}
}

// OpenTicketForm handles GET /forms/ticket
// @Summary Open the new-ticket form
// @Description Loads clients and lookups and applies the defaults
// @Tags Forms
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.TicketFormView}
// @Router /forms/ticket [get]
func (h *FormController) OpenTicketForm(c *gin.Context) {
	form := middelware.GetSession(c).TicketForm
	success(c, http.StatusOK, "", form.Open(c.Request.Context()))
}

// SelectTicketClient handles PUT /forms/ticket/client
// @Summary Choose the client of the new ticket
// @Description Reloads contacts and active contracts; cliente_id 0 clears them
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body models.ClientSelection true "Client"
// @Success 200 {object} models.APIResponse{data=models.TicketFormView}
// @Router /forms/ticket/client [put]
func (h *FormController) SelectTicketClient(c *gin.Context) {
	var req models.ClientSelection
	if !h.bindJSON(c, &req) {
		return
	}
	form := middelware.GetSession(c).TicketForm
	success(c, http.StatusOK, "", form.SelectClient(c.Request.Context(), req.ClienteID))
}

// SubmitTicketForm handles POST /forms/ticket/submit
// @Summary Create the ticket
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body models.TicketCreate true "Ticket"
// @Success 201 {object} models.APIResponse{data=models.FormResult}
// @Failure 400 {object} models.APIResponse{data=models.TicketFormView} "Missing fields"
// @Router /forms/ticket/submit [post]
func (h *FormController) SubmitTicketForm(c *gin.Context) {
	var req models.TicketCreate
	if !h.decodeJSON(c, &req) {
		return
	}

	form := middelware.GetSession(c).TicketForm
	result, err := form.Submit(c.Request.Context(), req)
	if err != nil {
		h.failWith(c, err, services.MsgTicketCreate, form.View())
		return
	}
	success(c, http.StatusCreated, "Ticket creato", result)
}

// CloseTicketForm handles DELETE /forms/ticket
// @Summary Discard the new-ticket form
// @Tags Forms
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.TicketFormView}
// @Router /forms/ticket [delete]
func (h *FormController) CloseTicketForm(c *gin.Context) {
	form := middelware.GetSession(c).TicketForm
	form.Close()
	success(c, http.StatusOK, "", form.View())
}

// OpenInterventionForm handles GET /forms/intervention
// @Summary Open the new-intervention form
// @Description The logged user is the default technician
// @Tags Forms
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.InterventionFormView}
// @Router /forms/intervention [get]
func (h *FormController) OpenInterventionForm(c *gin.Context) {
	sess := middelware.GetSession(c)
	success(c, http.StatusOK, "", sess.InterventionForm.Open(c.Request.Context(), sess.Store.User()))
}

// SelectInterventionClient handles PUT /forms/intervention/client
// @Summary Choose the client of the new intervention
// @Description Reloads the open tickets of the client; cliente_id 0 clears them
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body models.ClientSelection true "Client"
// @Success 200 {object} models.APIResponse{data=models.InterventionFormView}
// @Router /forms/intervention/client [put]
func (h *FormController) SelectInterventionClient(c *gin.Context) {
	var req models.ClientSelection
	if !h.bindJSON(c, &req) {
		return
	}
	form := middelware.GetSession(c).InterventionForm
	success(c, http.StatusOK, "", form.SelectClient(c.Request.Context(), req.ClienteID))
}

// SubmitInterventionForm handles POST /forms/intervention/submit
// @Summary Create the intervention
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body models.InterventoCreate true "Intervention"
// @Success 201 {object} models.APIResponse{data=models.FormResult}
// @Failure 400 {object} models.APIResponse{data=models.InterventionFormView} "Missing fields"
// @Router /forms/intervention/submit [post]
func (h *FormController) SubmitInterventionForm(c *gin.Context) {
	var req models.InterventoCreate
	if !h.decodeJSON(c, &req) {
		return
	}

	form := middelware.GetSession(c).InterventionForm
	result, err := form.Submit(c.Request.Context(), req)
	if err != nil {
		h.failWith(c, err, services.MsgInterventoCreate, form.View())
		return
	}
	success(c, http.StatusCreated, "Intervento creato", result)
}

// CloseInterventionForm handles DELETE /forms/intervention
// @Summary Discard the new-intervention form
// @Tags Forms
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.InterventionFormView}
// @Router /forms/intervention [delete]
func (h *FormController) CloseInterventionForm(c *gin.Context) {
	form := middelware.GetSession(c).InterventionForm
	form.Close()
	success(c, http.StatusOK, "", form.View())
}
