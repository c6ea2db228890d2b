package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidInput    = errors.New("invalid input")

	ErrValidation           = errors.New("validation failed")
	ErrInvalidDate          = errors.New("invalid date format")
	ErrInvalidTime          = errors.New("invalid time format, expected HH:MM or h:MM AM/PM")
	ErrSlugDerivationFailed = errors.New("unable to generate slug from title")
	ErrInvalidSlug          = errors.New("invalid slug format")
	ErrDuplicateSlug        = errors.New("an event with this slug already exists")
	ErrDanglingReference    = errors.New("referenced event does not exist")

	ErrUnsupportedImageType = errors.New("invalid file type, only JPEG, PNG, WebP, and GIF images are allowed")
	ErrImageTooLarge        = errors.New("file size exceeds 5MB limit")
	ErrUploadFailed         = errors.New("image upload failed")

	ErrConnection = errors.New("store unreachable")
)

// FieldError 描述單一欄位的驗證失敗，errors.Is 可比對 ErrValidation
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// Required 回傳 "<field> is required." 類型的欄位錯誤
func Required(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}

// Invalid 回傳帶自訂原因的欄位錯誤
func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// IsClientError 判斷錯誤是否屬於輸入錯誤（不應自動重試）
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrInvalidInput,
		ErrInvalidDate,
		ErrInvalidTime,
		ErrSlugDerivationFailed,
		ErrInvalidSlug,
		ErrUnsupportedImageType,
		ErrImageTooLarge,
		ErrDuplicateSlug,
		ErrDanglingReference,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
