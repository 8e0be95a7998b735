package controller

import (
	"daassist-web/middelware"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PageController serves the shell, the dashboard and the calendar
type PageController struct {
	handler
	now func() time.Time
}

func NewPageController(log logger.Logger) *PageController {
	return &PageController{handler: newHandler(log), now: time.Now}
}

// Layout handles GET /layout
// @Summary Application shell
// @Description Navigation with the active entry for path, plus the logged user
// @Tags Pages
// @Produce json
// @Param path query string false "Current page path"
// @Success 200 {object} models.APIResponse{data=models.LayoutView}
// @Router /layout [get]
func (h *PageController) Layout(c *gin.Context) {
	state := middelware.GetSession(c).Store.State()
	success(c, http.StatusOK, "", services.Layout(state, c.DefaultQuery("path", "/")))
}

// Dashboard handles GET /dashboard
// @Summary Dashboard
// @Tags Pages
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DashboardView}
// @Failure 502 {object} models.APIResponse "Backend unreachable"
// @Router /dashboard [get]
func (h *PageController) Dashboard(c *gin.Context) {
	view, err := h.pages(c).Dashboard.View(c.Request.Context())
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}

// Calendar handles GET /calendar
// @Summary Monthly calendar of interventions
// @Description Six-week grid starting on Monday. Without year and month the current month is shown.
// @Tags Pages
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month, 1-12"
// @Success 200 {object} models.APIResponse{data=models.CalendarView}
// @Failure 400 {object} models.APIResponse "Invalid month"
// @Router /calendar [get]
func (h *PageController) Calendar(c *gin.Context) {
	q := newQueryReader(c)
	year, month := q.Int("year"), q.Int("month")
	if err := q.Err(); err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}

	view, err := h.pages(c).Calendar.Month(c.Request.Context(), year, month, h.now())
	if err != nil {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}
	success(c, http.StatusOK, "", view)
}
