package controller

import (
	"daassist-web/apiclient"
	"daassist-web/middelware"
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MsgSessionExpired is shown when the remote API rejects the stored token
const MsgSessionExpired = "Sessione scaduta, effettua di nuovo l'accesso"

// handler carries what every page controller shares
type handler struct {
	logger    logger.Logger
	validator *validator.Validate
}

func newHandler(log logger.Logger) handler {
	return handler{logger: log, validator: validator.New()}
}

// formatValidationErrors formats validation errors into readable messages
func (h *handler) formatValidationErrors(err error) string {
	var errorMessages []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				errorMessages = append(errorMessages, fieldError.Field()+" is required")
			case "min", "gt":
				errorMessages = append(errorMessages, fieldError.Field()+" must be greater than "+fieldError.Param())
			case "email":
				errorMessages = append(errorMessages, fieldError.Field()+" must be a valid email address")
			case "oneof":
				errorMessages = append(errorMessages, fieldError.Field()+" must be one of: "+strings.ReplaceAll(fieldError.Param(), " ", ", "))
			default:
				errorMessages = append(errorMessages, fieldError.Field()+" is invalid")
			}
		}
	}

	return strings.Join(errorMessages, "; ")
}

// pages returns the page services of the request session
func (h *handler) pages(c *gin.Context) *services.Pages {
	return middelware.GetSession(c).Pages
}

// bindJSON decodes and validates the request body. On failure the 400
// response is already written.
func (h *handler) bindJSON(c *gin.Context, req interface{}) bool {
	if !h.decodeJSON(c, req) {
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return true
		}
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: services.MsgRequiredFields,
			Error: &models.APIError{
				Type:    models.ErrorTypeValidation,
				Details: h.formatValidationErrors(err),
			},
		})
		return false
	}
	return true
}

// decodeJSON only decodes; the service validates the payload itself
func (h *handler) decodeJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Debugf("Failed to bind JSON: %v", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Richiesta non valida",
			Error: &models.APIError{
				Type:    models.ErrorTypeValidation,
				Details: err.Error(),
			},
		})
		return false
	}
	return true
}

func success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.APIResponse{
		Status:  "success",
		Code:    status,
		Message: message,
		Data:    data,
	})
}

// classify maps an error to the HTTP status and error type shown to the
// browser
func classify(err error) (int, string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, models.ErrorTypeValidation
	case errors.Is(err, services.ErrNotAuthorized):
		return http.StatusUnauthorized, models.ErrorTypeAuthentication
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, models.ErrorTypeNotFound
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			return http.StatusUnauthorized, models.ErrorTypeAuthentication
		case apiErr.StatusCode == http.StatusNotFound:
			return http.StatusNotFound, models.ErrorTypeNotFound
		case apiErr.StatusCode >= 500:
			return http.StatusBadGateway, models.ErrorTypeBackend
		}
		return apiErr.StatusCode, models.ErrorTypeBackend
	}
	return http.StatusBadGateway, models.ErrorTypeTransport
}

// fail writes the error envelope for err. The message is the backend detail
// when there is one, otherwise fallback.
func (h *handler) fail(c *gin.Context, err error, fallback string) {
	h.failWith(c, err, fallback, nil)
}

// failWith is fail with a payload, used by forms to send back their state
func (h *handler) failWith(c *gin.Context, err error, fallback string, data interface{}) {
	status, errType := classify(err)

	message := services.UserMessage(err, fallback)
	if status == http.StatusUnauthorized {
		message = MsgSessionExpired
	}

	apiErr := &models.APIError{Type: errType, Details: err.Error()}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		apiErr.Field = strings.Join(verr.Fields, ",")
	}

	if status >= 500 {
		h.logger.Errorf("%s: %v", fallback, err)
	} else {
		h.logger.Warnf("%s: %v", fallback, err)
	}

	c.JSON(status, models.APIResponse{
		Status:  "error",
		Code:    status,
		Message: message,
		Data:    data,
		Error:   apiErr,
	})
}

// detailFailed answers a detail page. A missing record gets the not-found
// view with the link back to its list.
func (h *handler) detailFailed(c *gin.Context, err error, notFoundMessage, backHref string) {
	if status, _ := classify(err); status != http.StatusNotFound {
		h.fail(c, err, services.MsgLoadFailed)
		return
	}

	h.logger.Debugf("%s: %v", notFoundMessage, err)
	c.JSON(http.StatusNotFound, models.APIResponse{
		Status:  "error",
		Code:    http.StatusNotFound,
		Message: notFoundMessage,
		Data:    models.NotFoundView{Message: notFoundMessage, BackHref: backHref},
		Error: &models.APIError{
			Type:    models.ErrorTypeNotFound,
			Details: err.Error(),
		},
	})
}

// pathID reads a numeric path parameter. A malformed id is a missing record.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, services.ErrNotFound)
	}
	return id, nil
}

// queryReader parses optional query parameters, keeping the first error
type queryReader struct {
	c   *gin.Context
	err error
}

func newQueryReader(c *gin.Context) *queryReader {
	return &queryReader{c: c}
}

func (q *queryReader) Int(name string) int {
	raw := q.c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(name, raw)
		return 0
	}
	return v
}

// ID returns nil when the parameter is absent or empty
func (q *queryReader) ID(name string) *int64 {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.fail(name, raw)
		return nil
	}
	return &v
}

func (q *queryReader) Bool(name string) *bool {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(name, raw)
		return nil
	}
	return &v
}

// String returns the parameter as sent; search terms are forwarded verbatim
func (q *queryReader) String(name string) string {
	return q.c.Query(name)
}

func (q *queryReader) fail(name, raw string) {
	if q.err == nil {
		q.err = &services.ValidationError{
			Message: fmt.Sprintf("Parametro non valido: %s=%s", name, raw),
			Fields:  []string{name},
		}
	}
}

func (q *queryReader) Err() error {
	return q.err
}
