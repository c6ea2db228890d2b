package handler

import (
	"net/http"

	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/service"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("bookings", h.Create)
		router.PUT("bookings/:uuid", h.Update)
		router.GET("events/:slug/bookings", h.CountByEventSlug)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	booking, err := h.service.Create(c, req.EventID, req.Email)
	if err != nil {
		handleError(c, err, "CreateBooking")
		return
	}
	respondOK(c, http.StatusCreated, "Booking created successfully", "booking", booking)
}

func (h *BookingHandler) Update(c *gin.Context) {
	var uri uriUUID
	if err := BindUri(c, &uri); err != nil {
		return
	}
	bookingID, err := uuid.Parse(uri.UUID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid booking uuid", err)
		return
	}

	var req model.UpdateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if req.EventID == nil && req.Email == nil {
		handleError(c, apperrors.ErrInvalidInput, "UpdateBooking")
		return
	}

	booking, err := h.service.Update(c, bookingID, model.UpdateBookingParams{
		EventID: req.EventID,
		Email:   req.Email,
	})
	if err != nil {
		handleError(c, err, "UpdateBooking")
		return
	}
	respondOK(c, http.StatusOK, "Booking updated successfully", "booking", booking)
}

func (h *BookingHandler) CountByEventSlug(c *gin.Context) {
	count, err := h.service.CountByEventSlug(c, c.Param("slug"))
	if err != nil {
		handleError(c, err, "CountByEventSlug")
		return
	}
	respondOK(c, http.StatusOK, "Booking count fetched successfully", "count", count)
}
