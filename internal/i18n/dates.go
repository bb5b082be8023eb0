package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
)

var arabicWeekdays = [...]string{
	time.Sunday:    "الأحد",
	time.Monday:    "الاثنين",
	time.Tuesday:   "الثلاثاء",
	time.Wednesday: "الأربعاء",
	time.Thursday:  "الخميس",
	time.Friday:    "الجمعة",
	time.Saturday:  "السبت",
}

// Egyptian month names, as rendered by the ar-EG locale.
var arabicMonths = [...]string{
	time.January:   "يناير",
	time.February:  "فبراير",
	time.March:     "مارس",
	time.April:     "أبريل",
	time.May:       "مايو",
	time.June:      "يونيو",
	time.July:      "يوليو",
	time.August:    "أغسطس",
	time.September: "سبتمبر",
	time.October:   "أكتوبر",
	time.November:  "نوفمبر",
	time.December:  "ديسمبر",
}

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

// ArabicDigits replaces ASCII digits with Arabic-Indic digits.
func ArabicDigits(s string) string {
	return arabicDigits.Replace(s)
}

// Gregorian renders the long Gregorian date:
// "Monday, October 19, 2026" or "الاثنين، ١٩ أكتوبر ٢٠٢٦".
func Gregorian(lang Lang, t time.Time) string {
	if lang == Arabic {
		s := fmt.Sprintf("%s، %d %s %d", arabicWeekdays[t.Weekday()], t.Day(), arabicMonths[t.Month()], t.Year())
		return ArabicDigits(s)
	}
	return t.Format("Monday, January 2, 2006")
}

// Hijri renders "weekday, day month year" from the API's bilingual fields.
// It returns "" when the API sent no Hijri date.
func Hijri(lang Lang, h api.HijriDate) string {
	if h.Day == "" || h.Year == "" {
		return ""
	}
	weekday, month := h.Weekday.En, h.Month.En
	if lang == Arabic {
		weekday, month = h.Weekday.Ar, h.Month.Ar
	}
	if month == "" {
		month = h.Month.En
	}
	if weekday == "" {
		return fmt.Sprintf("%s %s %s", h.Day, month, h.Year)
	}
	return fmt.Sprintf("%s, %s %s %s", weekday, h.Day, month, h.Year)
}

// ShortDate renders a table row label: "Mon 19 Oct" or "الاثنين ١٩ أكتوبر".
func ShortDate(lang Lang, t time.Time) string {
	if lang == Arabic {
		return ArabicDigits(fmt.Sprintf("%s %d %s", arabicWeekdays[t.Weekday()], t.Day(), arabicMonths[t.Month()]))
	}
	return t.Format("Mon 02 Jan")
}
