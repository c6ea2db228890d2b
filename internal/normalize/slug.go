package normalize

import (
	"regexp"
	"strings"
)

var (
	apostrophes  = regexp.MustCompile(`['’]`)
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// DeriveSlug 將標題轉為 URL 安全的 slug（小寫、以連字號分隔、移除標點）。
// 標題不含任何英數字時回傳空字串，呼叫端必須視為失敗。
func DeriveSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = apostrophes.ReplaceAllString(s, "")
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
