package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/taltos-portal/internal/content"
	"github.com/daniilsolovey/taltos-portal/internal/db"
)

const statusMessage = "Táltos Lovasudvar Backend Running"

type ContentHandler struct {
	m      *content.Manager
	rpc    http.Handler
	getenv func(string) string
	log    *slog.Logger
}

func NewContentHandler(m *content.Manager, log *slog.Logger) *ContentHandler {
	return &ContentHandler{
		m:      m,
		getenv: os.Getenv,
		log:    log,
	}
}

// WithRPC mounts the JSON-RPC handler at /rpc.
func (h *ContentHandler) WithRPC(rpc http.Handler) *ContentHandler {
	h.rpc = rpc
	return h
}

func (h *ContentHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, ErrorResponse{Error: message})
}

// handleContentError maps manager errors onto HTTP statuses.
func (h *ContentHandler) handleContentError(c echo.Context, err error) error {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		h.log.Info("request rejected", "path", c.Path(), "fields", verr.Fields)
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, db.ErrUnavailable):
		return h.handleError(c, err, http.StatusServiceUnavailable, "storage unavailable")
	default:
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
}

func (h *ContentHandler) bindListQuery(c echo.Context, defaultLimit int) (ListQuery, error) {
	q := ListQuery{Limit: defaultLimit}
	err := echo.QueryParamsBinder(c).
		String("lang", &q.Lang).
		Int("limit", &q.Limit).
		BindError()

	return q, err
}

// Root handles GET /
// @Summary Health banner
// @Tags status
// @Produce json
// @Success 200 {object} rest.StatusResponse
// @Router / [get]
func (h *ContentHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Message: statusMessage})
}

// Diagnostics handles GET /test
// @Summary Storage diagnostics
// @Description Reports storage connectivity, configuration presence and up to 20 collection names. Never fails.
// @Tags status
// @Produce json
// @Success 200 {object} content.Diagnostics
// @Router /test [get]
func (h *ContentHandler) Diagnostics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.m.Diagnose(c.Request().Context(), h.getenv))
}

// Schema handles GET /schema
// @Summary Known collections
// @Tags status
// @Produce json
// @Success 200 {object} rest.SchemaResponse
// @Router /schema [get]
func (h *ContentHandler) Schema(c echo.Context) error {
	return c.JSON(http.StatusOK, SchemaResponse{Collections: content.Collections()})
}

// News handles GET /api/news
// @Summary List news posts
// @Tags news
// @Produce json
// @Param lang query string false "Only posts in this language"
// @Param limit query int false "Maximum number of posts (default: 4)"
// @Success 200 {array} object
// @Failure 400,500,503 {object} rest.ErrorResponse
// @Router /api/news [get]
func (h *ContentHandler) News(c echo.Context) error {
	q, err := h.bindListQuery(c, content.DefaultNewsLimit)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	docs, err := h.m.News(c.Request().Context(), q.Lang, q.Limit)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.JSON(http.StatusOK, docs)
}

// Horses handles GET /api/horses
// @Summary List horses
// @Tags horses
// @Produce json
// @Param limit query int false "Maximum number of horses (default: 50)"
// @Success 200 {array} object
// @Failure 400,500,503 {object} rest.ErrorResponse
// @Router /api/horses [get]
func (h *ContentHandler) Horses(c echo.Context) error {
	q, err := h.bindListQuery(c, content.DefaultHorsesLimit)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	docs, err := h.m.Horses(c.Request().Context(), q.Limit)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.JSON(http.StatusOK, docs)
}

// Reviews handles GET /api/reviews
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Param lang query string false "Only reviews in this language"
// @Param limit query int false "Maximum number of reviews (default: 10)"
// @Success 200 {array} object
// @Failure 400,500,503 {object} rest.ErrorResponse
// @Router /api/reviews [get]
func (h *ContentHandler) Reviews(c echo.Context) error {
	q, err := h.bindListQuery(c, content.DefaultReviewsLimit)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	docs, err := h.m.Reviews(c.Request().Context(), q.Lang, q.Limit)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.JSON(http.StatusOK, docs)
}

// Contact handles POST /api/contact
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param message body content.ContactMessage true "Contact message"
// @Success 200 {object} rest.CreatedResponse
// @Failure 400,500,503 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/contact [post]
func (h *ContentHandler) Contact(c echo.Context) error {
	var msg content.ContactMessage
	if err := h.decodeBody(c, &msg); err != nil {
		return h.handleContentError(c, err)
	}

	id, err := h.m.SubmitContact(c.Request().Context(), &msg)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.JSON(http.StatusOK, CreatedResponse{OK: true, ID: id})
}

// Booking handles POST /api/booking
// @Summary Submit a booking request
// @Tags booking
// @Accept json
// @Produce json
// @Param request body content.BookingRequest true "Booking request"
// @Success 200 {object} rest.BookingResponse
// @Failure 400,500,503 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/booking [post]
func (h *ContentHandler) Booking(c echo.Context) error {
	var req content.BookingRequest
	if err := h.decodeBody(c, &req); err != nil {
		return h.handleContentError(c, err)
	}

	id, err := h.m.SubmitBooking(c.Request().Context(), &req)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.JSON(http.StatusOK, BookingResponse{OK: true, ID: id, Message: content.BookingConfirmation})
}

// SwaggerDoc serves the registered swagger document.
func (h *ContentHandler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusNotFound, "swagger document not registered")
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

// decodeBody reads the request body into rec. Field type errors are reported
// as a content.ValidationError together with the constraint checks.
func (h *ContentHandler) decodeBody(c echo.Context, rec content.Record) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	return content.Decode(body, rec)
}
