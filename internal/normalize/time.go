package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "go-gin-event-hub/pkg/app_errors"
)

var (
	clock24 = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
	clock12 = regexp.MustCompile(`(?i)^(\d{1,2}):([0-5]\d)\s*(am|pm)$`)
)

// Time 將 24 小時制（H:MM / HH:MM）或 12 小時制（h:MM AM/PM）轉為 HH:MM
func Time(input string) (string, error) {
	v := strings.TrimSpace(input)

	if m := clock24.FindStringSubmatch(v); m != nil {
		hours, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hours, m[2]), nil
	}

	if m := clock12.FindStringSubmatch(v); m != nil {
		hours, _ := strconv.Atoi(m[1])
		if hours < 1 || hours > 12 {
			return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidTime, input)
		}
		switch meridiem := strings.ToLower(m[3]); {
		case meridiem == "pm" && hours != 12:
			hours += 12
		case meridiem == "am" && hours == 12:
			hours = 0
		}
		return fmt.Sprintf("%02d:%s", hours, m[2]), nil
	}

	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidTime, input)
}
