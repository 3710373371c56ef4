// Package reltime форматирует момент времени относительно текущего в человекочитаемом виде.
package reltime

import (
	"time"

	"github.com/dustin/go-humanize"
)

// JustNow подпись для событий моложе минуты.
const JustNow = "just now"

// Format возвращает строку вида "just now", "5 minutes ago", "2 hours ago".
// Моменты из будущего (расхождение часов) считаются только что произошедшими.
func Format(t, now time.Time) string {
	if now.Sub(t) < time.Minute {
		return JustNow
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
