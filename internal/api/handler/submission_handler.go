package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
)

// SubmissionHandler serves the public contact/booking forms and the admin inbox.
type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// --- Request / Response types ---

type createMessageRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Body     string `json:"body" validate:"required,max=5000"`
	Plan     string `json:"plan,omitempty" validate:"max=60"`
}

type createBookingRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Company  string `json:"company,omitempty" validate:"max=120"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Notes    string `json:"notes,omitempty" validate:"max=2000"`
	Plan     string `json:"plan" validate:"required,max=60"`
}

type updateMessageRequest struct {
	Read *bool `json:"read" validate:"required"`
}

type updateBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type messageResponse struct {
	Success bool            `json:"success"`
	Message *domain.Message `json:"message"`
}

type bookingResponse struct {
	Success bool            `json:"success"`
	Booking *domain.Booking `json:"booking"`
}

type listMessagesResponse struct {
	Success  bool              `json:"success"`
	Messages []*domain.Message `json:"messages"`
}

type listBookingsResponse struct {
	Success  bool              `json:"success"`
	Bookings []*domain.Booking `json:"bookings"`
}

// submissionEnvelope tags each union member with its kind.
type submissionEnvelope struct {
	Kind domain.SubmissionKind `json:"kind"`
	Data domain.Submission     `json:"data"`
}

type listSubmissionsResponse struct {
	Success     bool                 `json:"success"`
	Submissions []submissionEnvelope `json:"submissions"`
}

// --- Public form endpoints ---

// CreateMessage handles POST /messages.
//
// @Summary      Submit a contact message
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        body  body      createMessageRequest  true  "Contact form"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /messages [post]
func (h *SubmissionHandler) CreateMessage(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.service.CreateMessage(c.Request().Context(), ports.CreateMessageInput{
		FullName: req.FullName,
		Email:    req.Email,
		Subject:  req.Subject,
		Body:     req.Body,
		Plan:     req.Plan,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: m})
}

// CreateBooking handles POST /bookings.
//
// @Summary      Request a booking
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        body  body      createBookingRequest  true  "Booking form"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /bookings [post]
func (h *SubmissionHandler) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.service.CreateBooking(c.Request().Context(), ports.CreateBookingInput{
		FullName: req.FullName,
		Email:    req.Email,
		Company:  req.Company,
		Date:     req.Date,
		Time:     req.Time,
		Notes:    req.Notes,
		Plan:     req.Plan,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookingResponse{Success: true, Booking: b})
}

// --- Admin inbox ---

// ListSubmissions handles GET /admin/submissions.
//
// @Summary      List all submissions, newest first
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  listSubmissionsResponse
// @Failure      401  {object}  map[string]any
// @Router       /admin/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c echo.Context) error {
	subs, err := h.service.ListSubmissions(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]submissionEnvelope, 0, len(subs))
	for _, s := range subs {
		out = append(out, submissionEnvelope{Kind: s.Kind(), Data: s})
	}
	return c.JSON(http.StatusOK, listSubmissionsResponse{Success: true, Submissions: out})
}

// ListMessages handles GET /admin/messages.
//
// @Summary      List contact messages
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  listMessagesResponse
// @Router       /admin/messages [get]
func (h *SubmissionHandler) ListMessages(c echo.Context) error {
	msgs, err := h.service.ListMessages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listMessagesResponse{Success: true, Messages: msgs})
}

// UpdateMessage handles PATCH /admin/messages/:id.
//
// @Summary      Mark a message read or unread
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string                true  "Message id"
// @Param        body  body      updateMessageRequest  true  "Read flag"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /admin/messages/{id} [patch]
func (h *SubmissionHandler) UpdateMessage(c echo.Context) error {
	var req updateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.service.MarkMessageRead(c.Request().Context(), c.Param("id"), *req.Read)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: m})
}

// DeleteMessage handles DELETE /admin/messages/:id.
//
// @Summary      Delete a message
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  map[string]any
// @Router       /admin/messages/{id} [delete]
func (h *SubmissionHandler) DeleteMessage(c echo.Context) error {
	if err := h.service.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListBookings handles GET /admin/bookings.
//
// @Summary      List booking requests
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  listBookingsResponse
// @Router       /admin/bookings [get]
func (h *SubmissionHandler) ListBookings(c echo.Context) error {
	bookings, err := h.service.ListBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listBookingsResponse{Success: true, Bookings: bookings})
}

// UpdateBooking handles PATCH /admin/bookings/:id.
//
// @Summary      Change a booking's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "New status"
// @Success      200   {object}  bookingResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /admin/bookings/{id} [patch]
func (h *SubmissionHandler) UpdateBooking(c echo.Context) error {
	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.service.UpdateBookingStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingResponse{Success: true, Booking: b})
}

// DeleteBooking handles DELETE /admin/bookings/:id.
//
// @Summary      Delete a booking
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  map[string]any
// @Router       /admin/bookings/{id} [delete]
func (h *SubmissionHandler) DeleteBooking(c echo.Context) error {
	if err := h.service.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
