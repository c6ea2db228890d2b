package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/normalize"
	"go-gin-event-hub/internal/upload"
	"go-gin-event-hub/internal/validate"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxFormOverhead 圖片以外的表單欄位可使用的大小
const maxFormOverhead = 1 << 20

// CreateEventForm 建立活動的 multipart 表單；agenda / tags 可重複欄位或單一字串
type CreateEventForm struct {
	Title       string                `form:"title"`
	Description string                `form:"description"`
	Overview    string                `form:"overview"`
	Venue       string                `form:"venue"`
	Location    string                `form:"location"`
	Date        string                `form:"date"`
	Time        string                `form:"time"`
	Mode        string                `form:"mode"`
	Audience    string                `form:"audience"`
	Agenda      []string              `form:"agenda"`
	Organizer   string                `form:"organizer"`
	Tags        []string              `form:"tags"`
	Image       *multipart.FileHeader `form:"image"`
}

// eventUpload 通過表單檢查的活動資料與圖片內容
type eventUpload struct {
	draft model.EventDraft
	image []byte
}

// parseEventForm 依序檢查必填欄位、agenda / tags，最後才讀取圖片，
// 讓欄位錯誤在上傳前就回傳
func parseEventForm(c *gin.Context) (*eventUpload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, upload.MaxImageSize+maxFormOverhead)

	var form CreateEventForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.ErrImageTooLarge
		}
		return nil, apperrors.Invalid("form", "must be multipart/form-data")
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", form.Title},
		{"description", form.Description},
		{"overview", form.Overview},
		{"venue", form.Venue},
		{"location", form.Location},
		{"date", form.Date},
		{"time", form.Time},
		{"mode", form.Mode},
		{"audience", form.Audience},
		{"organizer", form.Organizer},
	} {
		if !validate.IsNonEmptyString(f.value) {
			return nil, apperrors.Required(f.name)
		}
	}

	agenda, err := normalize.StringList("agenda", form.Agenda)
	if err != nil {
		return nil, err
	}
	tags, err := normalize.StringList("tags", form.Tags)
	if err != nil {
		return nil, err
	}

	if form.Image == nil {
		return nil, apperrors.Required("image")
	}
	data, err := readImage(form.Image)
	if err != nil {
		return nil, err
	}

	return &eventUpload{
		draft: model.EventDraft{
			Title:       form.Title,
			Description: form.Description,
			Overview:    form.Overview,
			Venue:       form.Venue,
			Location:    form.Location,
			Date:        form.Date,
			Time:        form.Time,
			Mode:        form.Mode,
			Audience:    form.Audience,
			Agenda:      agenda,
			Organizer:   form.Organizer,
			Tags:        tags,
		},
		image: data,
	}, nil
}

// readImage 最多讀取 MaxImageSize+1 bytes，超過的部分交給 ValidateImage 判斷
func readImage(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > upload.MaxImageSize {
		return nil, apperrors.ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.Invalid("image", "could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, upload.MaxImageSize+1))
	if err != nil {
		return nil, apperrors.Invalid("image", "could not be read")
	}
	return data, nil
}
