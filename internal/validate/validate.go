package validate

import (
	"regexp"
	"strings"
)

const MaxSlugLength = 200

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// IsNonEmptyString 當 v 為字串且 trim 後長度大於 0 時回傳 true
func IsNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// IsNonEmptyStringArray 當 v 為至少一個元素的字串陣列且每個元素皆非空時回傳 true
func IsNonEmptyStringArray(v any) bool {
	switch items := v.(type) {
	case []string:
		if len(items) == 0 {
			return false
		}
		for _, s := range items {
			if !IsNonEmptyString(s) {
				return false
			}
		}
		return true
	case []any:
		if len(items) == 0 {
			return false
		}
		for _, s := range items {
			if !IsNonEmptyString(s) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsSlug 檢查 slug 是否為 URL 安全格式，查詢資料庫前使用
func IsSlug(s string) bool {
	return len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}
