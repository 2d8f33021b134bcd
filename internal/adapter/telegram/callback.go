package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback data is an action followed by colon separated integer or string
// arguments, e.g. "b:2:255" toggles the bookmark of 2:255. Telegram caps the
// payload at 64 bytes.
const (
	actNoop         = "noop"
	actSurahList    = "sp"
	actSurah        = "s"
	actPage         = "p"
	actRetry        = "r"
	actFavorite     = "f"
	actBookmark     = "b"
	actJuzList      = "jl"
	actJuz          = "j"
	actResume       = "c"
	actFavoriteList = "fl"
	actBookmarkList = "bl"
	actUnbookmark   = "bx"
	actSettings     = "st"
	actFont         = "ft"
	actDisplay      = "d"
	actLanguageMenu = "lm"
	actLanguage     = "l"
	actPrayer       = "pr"
	actLocation     = "loc"
	actFeedback     = "fb"
	actCancel       = "x"
	actTajwid       = "tj"
)

type callback struct {
	action string
	args   []string
}

func parseCallback(data string) callback {
	parts := strings.Split(data, ":")
	return callback{action: parts[0], args: parts[1:]}
}

// int returns the i-th argument as an integer
func (c callback) int(i int) (int, bool) {
	if i >= len(c.args) {
		return 0, false
	}
	v, err := strconv.Atoi(c.args[i])
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c callback) str(i int) string {
	if i >= len(c.args) {
		return ""
	}
	return c.args[i]
}

func callbackData(action string, args ...any) string {
	if len(args) == 0 {
		return action
	}
	var sb strings.Builder
	sb.WriteString(action)
	for _, a := range args {
		sb.WriteByte(':')
		sb.WriteString(fmt.Sprint(a))
	}
	return sb.String()
}
