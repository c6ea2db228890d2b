package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-gin-event-hub/internal/handler"
	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/service/mocks"
	"go-gin-event-hub/internal/upload"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type imageUploaderMock struct {
	mock.Mock
}

func (m *imageUploaderMock) UploadImage(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func setupEventTestRouter(svc *mocks.EventServiceMock, uploader *imageUploaderMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()
	router := gin.New()
	h := handler.NewEventHandler(svc, uploader)
	h.RegisterRoutes(router)
	return router
}

func newEvent() *model.Event {
	return &model.Event{
		ID:      1,
		EventID: uuid.New(),
		Title:   "Go Conference 2025",
		Slug:    "go-conference-2025",
		Date:    "2025-11-20",
		Time:    "09:30",
		Agenda:  []string{"Keynote", "Lunch"},
		Tags:    []string{"go", "backend"},
	}
}

func TestEventHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		svc.On("List", mock.Anything).Return([]*model.Event{newEvent()}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Events fetched successfully", body["message"])
		assert.Len(t, body["events"], 1)
		svc.AssertExpectations(t)
	})

	t.Run("ConnectionError", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		svc.On("List", mock.Anything).Return(nil, apperrors.ErrConnection).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body, "error")
	})
}

func TestEventHandler_GetBySlug(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})
		event := newEvent()

		svc.On("GetBySlug", mock.Anything, "go-conference-2025").Return(event, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/go-conference-2025", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "go-conference-2025", body["event"].(map[string]interface{})["slug"])
		svc.AssertExpectations(t)
	})

	t.Run("InvalidSlug", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		svc.On("GetBySlug", mock.Anything, "Bad_Slug").Return(nil, apperrors.ErrInvalidSlug).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/Bad_Slug", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		svc.On("GetBySlug", mock.Anything, "missing").Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Event not found", decodeBody(t, w)["message"])
	})
}

func TestEventHandler_GetByEventID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})
		event := newEvent()

		svc.On("GetByEventID", mock.Anything, event.EventID).Return(event, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/id/"+event.EventID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, event.EventID.String(), decodeBody(t, w)["event"].(map[string]interface{})["event_id"])
		svc.AssertExpectations(t)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/id/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetByEventID", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})
		id := uuid.New()

		svc.On("GetByEventID", mock.Anything, id).Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/id/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventHandler_FindSimilar(t *testing.T) {
	t.Run("EmptyIsStillOK", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		svc.On("FindSimilar", mock.Anything, "missing").Return([]*model.Event{}).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/missing/similar", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []interface{}{}, decodeBody(t, w)["events"])
	})
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)
		created := newEvent()

		uploader.On("UploadImage", mock.Anything, pngHeader).Return("https://cdn.example.com/banner.png", nil).Once()
		svc.On("Create", mock.Anything, mock.MatchedBy(func(d model.EventDraft) bool {
			return d.Title == "Go Conference 2025" &&
				d.Image == "https://cdn.example.com/banner.png" &&
				assert.ObjectsAreEqual([]string{"Keynote", "Lunch"}, d.Agenda) &&
				assert.ObjectsAreEqual([]string{"go", "backend"}, d.Tags)
		})).Return(created, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), pngHeader))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Event created successfully", decodeBody(t, w)["message"])
		svc.AssertExpectations(t)
		uploader.AssertExpectations(t)
	})

	t.Run("MissingImage", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "image is required", decodeBody(t, w)["message"])
		uploader.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingFieldBeforeUpload", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)
		fields := validEventFields()
		fields["venue"] = []string{"   "}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", fields, pngHeader))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "venue is required", decodeBody(t, w)["message"])
		uploader.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("InvalidTagsJSON", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)
		fields := validEventFields()
		fields["tags"] = []string{`["go",`}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", fields, pngHeader))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uploader.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("ImageOverFileLimit", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)
		image := append(append([]byte{}, pngHeader...), make([]byte, upload.MaxImageSize)...)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), image))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrImageTooLarge.Error(), decodeBody(t, w)["message"])
		uploader.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("BodyOverRequestLimit", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)
		image := append(append([]byte{}, pngHeader...), make([]byte, 2*upload.MaxImageSize)...)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), image))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrImageTooLarge.Error(), decodeBody(t, w)["message"])
		uploader.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("NotMultipart", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/api/v1/events", map[string]string{"title": "x"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "form must be multipart/form-data", decodeBody(t, w)["message"])
	})

	t.Run("UnsupportedImage", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)

		uploader.On("UploadImage", mock.Anything, mock.Anything).Return("", apperrors.ErrUnsupportedImageType).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), []byte("plain text")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UploadFailed", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)

		uploader.On("UploadImage", mock.Anything, pngHeader).Return("", apperrors.ErrUploadFailed).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), pngHeader))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)

		uploader.On("UploadImage", mock.Anything, pngHeader).Return("https://cdn.example.com/banner.png", nil).Once()
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicateSlug).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), pngHeader))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidDate", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		uploader := &imageUploaderMock{}
		router := setupEventTestRouter(svc, uploader)

		uploader.On("UploadImage", mock.Anything, pngHeader).Return("https://cdn.example.com/banner.png", nil).Once()
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidDate).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createMultipartRequest(t, "/api/v1/events", validEventFields(), pngHeader))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrInvalidDate.Error(), decodeBody(t, w)["message"])
	})
}

func TestEventHandler_UpdateByEventID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})
		event := newEvent()

		svc.On("UpdateByEventID", mock.Anything, event.EventID, mock.MatchedBy(func(p model.UpdateEventParams) bool {
			return p.Title != nil && *p.Title == "Renamed" &&
				p.Tags != nil && assert.ObjectsAreEqual([]string{"go", "cloud"}, *p.Tags) &&
				p.Agenda == nil
		})).Return(event, nil).Once()

		w := httptest.NewRecorder()
		req := createRawJSONHTTPRequest(http.MethodPut, "/api/v1/events/"+event.EventID.String(),
			`{"title":"Renamed","tags":"go, cloud"}`)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("TagsAsArray", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})
		event := newEvent()

		svc.On("UpdateByEventID", mock.Anything, event.EventID, mock.MatchedBy(func(p model.UpdateEventParams) bool {
			return p.Tags != nil && assert.ObjectsAreEqual([]string{"go", "go"}, *p.Tags)
		})).Return(event, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPut, "/api/v1/events/"+event.EventID.String(),
			map[string]interface{}{"tags": []string{" go ", "go"}}))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPut, "/api/v1/events/not-a-uuid",
			map[string]string{"title": "x"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UpdateByEventID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createRawJSONHTTPRequest(http.MethodPut, "/api/v1/events/"+uuid.NewString(), InvalidJSON))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("EmptyPatch", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createRawJSONHTTPRequest(http.MethodPut, "/api/v1/events/"+uuid.NewString(), `{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UpdateByEventID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})
		id := uuid.New()

		svc.On("UpdateByEventID", mock.Anything, id, mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createRawJSONHTTPRequest(http.MethodPut, "/api/v1/events/"+id.String(), `{"venue":"Hall B"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UnexpectedError", func(t *testing.T) {
		svc := mocks.NewEventServiceMock()
		router := setupEventTestRouter(svc, &imageUploaderMock{})
		id := uuid.New()

		svc.On("UpdateByEventID", mock.Anything, id, mock.Anything).Return(nil, errors.New("boom")).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createRawJSONHTTPRequest(http.MethodPut, "/api/v1/events/"+id.String(), `{"venue":"Hall B"}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeBody(t, w)["message"])
	})
}
