package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	apperrors "go-gin-event-hub/pkg/app_errors"
)

var listSeparators = regexp.MustCompile(`[\n,]`)

// StringList 將 agenda / tags 的三種輸入形式統一成有序、去空白的字串陣列：
//   - 重複欄位：["Intro", "Q&A"]
//   - 單一 JSON 陣列字串：`["Intro","Q&A"]`
//   - 單一逗號或換行分隔字串："Intro, Q&A"
//
// field 只用於錯誤訊息。
func StringList(field string, values []string) ([]string, error) {
	items := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			items = append(items, t)
		}
	}

	if len(items) == 0 {
		return nil, apperrors.Required(field)
	}
	if len(items) > 1 {
		return items, nil
	}

	single := items[0]
	if strings.HasPrefix(single, "[") {
		var parsed []any
		if err := json.Unmarshal([]byte(single), &parsed); err != nil {
			return nil, apperrors.Invalid(field, "must be a valid JSON array")
		}
		out := make([]string, 0, len(parsed))
		for _, x := range parsed {
			s, ok := x.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, apperrors.Invalid(field, "must be an array of non-empty strings")
			}
			out = append(out, strings.TrimSpace(s))
		}
		if len(out) == 0 {
			return nil, apperrors.Required(field)
		}
		return out, nil
	}

	out := splitDelimited(single)
	if len(out) == 0 {
		return nil, apperrors.Required(field)
	}
	return out, nil
}

// ExpandLegacyList 讀取時使用：舊資料可能把整個 JSON / CSV 字串存成單一元素，
// 此時展開成正規陣列；其他情況只做 trim 並過濾空字串。
func ExpandLegacyList(items []string) []string {
	if len(items) == 1 {
		raw := strings.TrimSpace(items[0])

		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil && allNonEmpty(parsed) {
			out := make([]string, len(parsed))
			for i, s := range parsed {
				out[i] = strings.TrimSpace(s)
			}
			return out
		}

		return splitDelimited(raw)
	}

	out := make([]string, 0, len(items))
	for _, s := range items {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splitDelimited(raw string) []string {
	parts := listSeparators.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func allNonEmpty(items []string) bool {
	for _, s := range items {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
