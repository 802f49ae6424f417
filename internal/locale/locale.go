package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Lang is a supported display language for formatted labels.
type Lang string

const (
	LangEN Lang = "en"
	LangHI Lang = "hi"
	LangMR Lang = "mr"
)

var supported = []language.Tag{
	language.English,
	language.Hindi,
	language.Marathi,
}

var matcher = language.NewMatcher(supported)

// Resolve maps an arbitrary locale code (e.g. "hi-IN", "mr", "fr") to a
// supported Lang. Unrecognized codes fall back to English.
func Resolve(code string) Lang {
	if code == "" {
		return LangEN
	}
	tags, _, err := language.ParseAcceptLanguage(code)
	if err != nil || len(tags) == 0 {
		return LangEN
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return LangEN
	}
	switch supported[index] {
	case language.Hindi:
		return LangHI
	case language.Marathi:
		return LangMR
	default:
		return LangEN
	}
}

var weekdays = map[Lang][7]string{
	LangEN: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	LangHI: {"रवि", "सोम", "मंगल", "बुध", "गुरु", "शुक्र", "शनि"},
	LangMR: {"रवि", "सोम", "मंगळ", "बुध", "गुरु", "शुक्र", "शनि"},
}

var months = map[Lang][12]string{
	LangEN: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	LangHI: {"जन", "फ़र", "मार्च", "अप्रैल", "मई", "जून", "जुल", "अग", "सित", "अक्टू", "नव", "दिस"},
	LangMR: {"जाने", "फेब्रु", "मार्च", "एप्रि", "मे", "जून", "जुलै", "ऑग", "सप्टें", "ऑक्टो", "नोव्हें", "डिसें"},
}

// ShortWeekday returns the abbreviated weekday name for t.
// Falls back to the fixed three-letter English truncation when the
// language has no table entry.
func (l Lang) ShortWeekday(t time.Time) string {
	names, ok := weekdays[l]
	if !ok {
		return t.Format("Mon")
	}
	return names[int(t.Weekday())]
}

// DayLabel returns a weekday/month/day label such as "Mon, Jan 2".
func (l Lang) DayLabel(t time.Time) string {
	names, ok := months[l]
	if !ok {
		return t.Format("Mon, Jan 2")
	}
	return fmt.Sprintf("%s, %s %d", l.ShortWeekday(t), names[int(t.Month())-1], t.Day())
}

// HourLabel returns an hour-only label for t, e.g. "15:00".
func (l Lang) HourLabel(t time.Time) string {
	return t.Format("15:04")
}

// WeekdayTime returns a "weekday, time" label for t, e.g. "Mon, 15:00".
func (l Lang) WeekdayTime(t time.Time) string {
	return fmt.Sprintf("%s, %s", l.ShortWeekday(t), t.Format("15:04"))
}
