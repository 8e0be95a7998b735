package controller

import (
	"daassist-web/apiclient"
	"daassist-web/middelware"
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	handler
}

func NewAuthController(log logger.Logger) *AuthController {
	return &AuthController{handler: newHandler(log)}
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Exchange username and password for backend tokens kept in the browser session
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.APIResponse{data=models.SessionState} "Logged in"
// @Failure 400 {object} models.APIResponse "Missing credentials"
// @Failure 401 {object} models.APIResponse "Invalid credentials"
// @Failure 502 {object} models.APIResponse "Backend unreachable"
// @Router /auth/login [post]
func (h *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: services.MsgRequiredFields,
			Error: &models.APIError{
				Type:    models.ErrorTypeValidation,
				Details: err.Error(),
			},
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: services.MsgRequiredFields,
			Error: &models.APIError{
				Type:    models.ErrorTypeValidation,
				Details: h.formatValidationErrors(err),
			},
		})
		return
	}

	sess := middelware.GetSession(c)
	if err := sess.Store.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		if apiclient.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: apiclient.DetailOr(err, services.MsgInvalidLogin),
				Error: &models.APIError{
					Type:    models.ErrorTypeAuthentication,
					Details: err.Error(),
				},
			})
			return
		}
		h.fail(c, err, services.MsgInvalidLogin)
		return
	}

	h.logger.WithFields(logger.Fields{"session_id": sess.ID, "username": req.Username}).Info("User logged in")
	success(c, http.StatusOK, "Accesso effettuato", sess.Store.State())
}

// Logout handles POST /auth/logout
// @Summary Log out
// @Description Clear the access and refresh tokens held for this browser session. The remote API is not called.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SessionState} "Logged out"
// @Router /auth/logout [post]
func (h *AuthController) Logout(c *gin.Context) {
	sess := middelware.GetSession(c)
	if err := sess.Store.Logout(c.Request.Context()); err != nil {
		h.logger.Warnf("Logout of session %s: %v", sess.ID, err)
	}
	success(c, http.StatusOK, "Disconnesso", sess.Store.State())
}

// Session handles GET /auth/session
// @Summary Current session state
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SessionState}
// @Router /auth/session [get]
func (h *AuthController) Session(c *gin.Context) {
	success(c, http.StatusOK, "", middelware.GetSession(c).Store.State())
}
