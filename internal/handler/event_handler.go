package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/normalize"
	"go-gin-event-hub/internal/service"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageUploader 驗證並上傳活動封面，回傳公開 URL；*upload.ImageService 實作此介面
type ImageUploader interface {
	UploadImage(ctx context.Context, data []byte) (string, error)
}

type EventHandler struct {
	service  service.EventService
	uploader ImageUploader
}

func NewEventHandler(service service.EventService, uploader ImageUploader) *EventHandler {
	return &EventHandler{service: service, uploader: uploader}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.POST("events", h.Create)
		router.GET("events/:slug", h.GetBySlug)
		router.GET("events/id/:uuid", h.GetByEventID)
		router.GET("events/:slug/similar", h.FindSimilar)
		router.PUT("events/:uuid", h.UpdateByEventID)
	}
}

// listInput agenda / tags 可以是 JSON 陣列或單一字串（JSON 陣列字串、逗號或換行分隔）
type listInput []string

func (l *listInput) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = listInput{single}
	return nil
}

// UpdateEventRequest 更新活動請求；slug 不可直接修改，由 title 推導
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Overview    *string    `json:"overview"`
	Image       *string    `json:"image"`
	Venue       *string    `json:"venue"`
	Location    *string    `json:"location"`
	Date        *string    `json:"date"`
	Time        *string    `json:"time"`
	Mode        *string    `json:"mode"`
	Audience    *string    `json:"audience"`
	Agenda      *listInput `json:"agenda"`
	Organizer   *string    `json:"organizer"`
	Tags        *listInput `json:"tags"`
}

func (req UpdateEventRequest) toParams() (model.UpdateEventParams, error) {
	params := model.UpdateEventParams{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Image:       req.Image,
		Venue:       req.Venue,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        req.Mode,
		Audience:    req.Audience,
		Organizer:   req.Organizer,
	}
	if req.Agenda != nil {
		agenda, err := normalize.StringList("agenda", *req.Agenda)
		if err != nil {
			return params, err
		}
		params.Agenda = &agenda
	}
	if req.Tags != nil {
		tags, err := normalize.StringList("tags", *req.Tags)
		if err != nil {
			return params, err
		}
		params.Tags = &tags
	}
	return params, nil
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "List")
		return
	}
	respondOK(c, http.StatusOK, "Events fetched successfully", "events", events)
}

func (h *EventHandler) GetBySlug(c *gin.Context) {
	event, err := h.service.GetBySlug(c, c.Param("slug"))
	if err != nil {
		handleError(c, err, "GetBySlug")
		return
	}
	respondOK(c, http.StatusOK, "Event fetched successfully", "event", event)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	eventID, ok := bindEventID(c)
	if !ok {
		return
	}
	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		handleError(c, err, "GetByEventID")
		return
	}
	respondOK(c, http.StatusOK, "Event fetched successfully", "event", event)
}

// FindSimilar 永遠回 200，找不到時為空陣列
func (h *EventHandler) FindSimilar(c *gin.Context) {
	events := h.service.FindSimilar(c, c.Param("slug"))
	respondOK(c, http.StatusOK, "Similar events fetched successfully", "events", events)
}

func (h *EventHandler) Create(c *gin.Context) {
	form, err := parseEventForm(c)
	if err != nil {
		handleError(c, err, "Create")
		return
	}

	imageURL, err := h.uploader.UploadImage(c, form.image)
	if err != nil {
		handleError(c, err, "Create")
		return
	}
	form.draft.Image = imageURL

	created, err := h.service.Create(c, form.draft)
	if err != nil {
		handleError(c, err, "Create")
		return
	}
	respondOK(c, http.StatusCreated, "Event created successfully", "event", created)
}

func (h *EventHandler) UpdateByEventID(c *gin.Context) {
	eventID, ok := bindEventID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params, err := req.toParams()
	if err != nil {
		handleError(c, err, "UpdateByEventID")
		return
	}
	if params.IsEmpty() {
		handleError(c, apperrors.ErrInvalidInput, "UpdateByEventID")
		return
	}

	updated, err := h.service.UpdateByEventID(c, eventID, params)
	if err != nil {
		handleError(c, err, "UpdateByEventID")
		return
	}
	respondOK(c, http.StatusOK, "Event updated successfully", "event", updated)
}

func bindEventID(c *gin.Context) (uuid.UUID, bool) {
	var uri uriUUID
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, false
	}
	eventID, err := uuid.Parse(uri.UUID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid event uuid", err)
		return uuid.Nil, false
	}
	return eventID, true
}
