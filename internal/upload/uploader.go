package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type Uploader interface {
	// Upload 上傳圖片到指定資料夾，回傳可公開存取的 URL
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}

type CloudinaryUploaderImpl struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader url 格式為 cloudinary://<api_key>:<api_secret>@<cloud_name>
func NewCloudinaryUploader(url string) (Uploader, error) {
	if url == "" {
		return nil, errors.New("cloudinary url is empty")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploaderImpl{cld: cld}, nil
}

func (u *CloudinaryUploaderImpl) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUploadFailed, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("%w: empty secure_url", apperrors.ErrUploadFailed)
	}
	return resp.SecureURL, nil
}

// DisabledUploader 未設定 CLOUDINARY_URL 時使用，所有上傳都失敗
type DisabledUploader struct{}

func (DisabledUploader) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	return "", fmt.Errorf("%w: image host is not configured", apperrors.ErrUploadFailed)
}

// ImageService 先驗證再上傳；驗證失敗時不會呼叫 Uploader
type ImageService struct {
	uploader Uploader
	folder   string
}

func NewImageService(uploader Uploader, folder string) *ImageService {
	return &ImageService{uploader: uploader, folder: folder}
}

func (s *ImageService) UploadImage(ctx context.Context, data []byte) (string, error) {
	if _, err := ValidateImage(data); err != nil {
		return "", err
	}

	url, err := s.uploader.Upload(ctx, data, s.folder)
	if err != nil {
		logger.WithComponent("upload").Error("image upload failed", zap.String("folder", s.folder), zap.Error(err))
		if !errors.Is(err, apperrors.ErrUploadFailed) {
			err = fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
		}
		return "", err
	}
	return url, nil
}
