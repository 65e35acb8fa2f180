package core

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is the language tag used for number formatting.
var Locale = language.MustParse("es-CO")

var printer = message.NewPrinter(Locale)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatNumber formats n with the locale's thousands separator.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatPercentage formats v with the given number of decimals, e.g. 87.3%.
func FormatPercentage(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}

// FormatGrade formats a score against its maximum, e.g. 4.5/5.0.
func FormatGrade(score, max float64) string {
	return fmt.Sprintf("%.1f/%.1f", score, max)
}

// FormatDuration renders minutes as "45 min", "2h" or "1h 30min".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}

// FormatLargeNumber abbreviates thousands and millions, e.g. 2847 -> 2.8K.
func FormatLargeNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

// FormatDate renders a long Spanish date, e.g. "20 de octubre de 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatDateTime renders a long Spanish date with the time of day.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s, %02d:%02d", FormatDate(t), t.Hour(), t.Minute())
}

// FormatDateRange renders "12 oct - 20 oct 2025".
func FormatDateRange(from, to time.Time) string {
	short := func(t time.Time) string {
		return fmt.Sprintf("%d %s", t.Day(), monthNames[t.Month()-1][:3])
	}
	return fmt.Sprintf("%s - %s %d", short(from), short(to), to.Year())
}

// IsDateNear reports whether t falls between now and now+days.
func IsDateNear(t, now time.Time, days int) bool {
	diff := t.Sub(now)
	return diff >= 0 && diff <= time.Duration(days)*24*time.Hour
}

// IsDatePast reports whether t is before now.
func IsDatePast(t, now time.Time) bool {
	return t.Before(now)
}
