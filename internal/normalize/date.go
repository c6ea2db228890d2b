package normalize

import (
	"fmt"
	"strings"
	"time"

	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/itlightning/dateparse"
)

const DateLayout = "2006-01-02"

// Date 解析任意常見日期格式，輸出 UTC 的 YYYY-MM-DD（捨棄時間部分）
func Date(input string) (string, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return "", fmt.Errorf("%w: empty value", apperrors.ErrInvalidDate)
	}

	// 沒有時區資訊的輸入一律視為 UTC，避免結果隨主機時區改變
	parsed, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, input)
	}

	return parsed.UTC().Format(DateLayout), nil
}
