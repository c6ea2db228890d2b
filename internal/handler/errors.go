package handler

import (
	"errors"
	"net/http"

	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses 依序比對；message 為空時使用 sentinel 本身的訊息
var errorResponses = []errorResponse{
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
	{apperrors.ErrInvalidDate, http.StatusBadRequest, ""},
	{apperrors.ErrInvalidTime, http.StatusBadRequest, ""},
	{apperrors.ErrSlugDerivationFailed, http.StatusBadRequest, ""},
	{apperrors.ErrInvalidSlug, http.StatusBadRequest, "Invalid slug format"},
	{apperrors.ErrUnsupportedImageType, http.StatusBadRequest, ""},
	{apperrors.ErrImageTooLarge, http.StatusBadRequest, ""},
	{apperrors.ErrDuplicateSlug, http.StatusConflict, ""},
	{apperrors.ErrDanglingReference, http.StatusUnprocessableEntity, "Event not found for booking"},
	{apperrors.ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{apperrors.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{apperrors.ErrUploadFailed, http.StatusBadGateway, "Image upload failed"},
	{apperrors.ErrConnection, http.StatusServiceUnavailable, "Service temporarily unavailable"},
}

// handleError 將 apperrors 對應到 HTTP 狀態碼，handler 共用。
// 輸入錯誤與查無資料記 Warn，其餘記 Error。
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	status, message := resolveError(err)
	if apperrors.IsClientError(err) || status == http.StatusNotFound {
		log.Warn(message)
	} else {
		log.Error(message)
	}
	respondError(c, status, message, err)
}

func resolveError(err error) (int, string) {
	var fieldErr *apperrors.FieldError
	if errors.As(err, &fieldErr) {
		return http.StatusBadRequest, fieldErr.Error()
	}
	if errors.Is(err, apperrors.ErrValidation) {
		return http.StatusBadRequest, "Invalid input"
	}
	for _, r := range errorResponses {
		if errors.Is(err, r.target) {
			if r.message == "" {
				return r.status, r.target.Error()
			}
			return r.status, r.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}
