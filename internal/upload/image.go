package upload

import (
	"fmt"

	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize 上傳圖片大小上限 5 MiB
const MaxImageSize = 5 << 20

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
}

// ValidateImage 依檔案內容判斷 MIME（不信任 client 宣告的 Content-Type），並檢查大小
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.Required("image")
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: %d bytes", apperrors.ErrImageTooLarge, len(data))
	}

	mtype := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: got %s", apperrors.ErrUnsupportedImageType, mtype.String())
}
