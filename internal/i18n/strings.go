package i18n

import "fmt"

// Label keys.
const (
	KeyNext          = "next"
	KeyMethod        = "method"
	KeyToggle        = "toggle"
	KeyLastThirdOpen = "last_third_open"
	KeyNight         = "night"
	KeyLoading       = "loading"
	KeyTitle         = "title"
	KeyHelp          = "help"
	KeyUnknownCity   = "unknown_city"
	KeyDate          = "date"
	KeyDays          = "days"
	KeyNightLength   = "night_length"
	KeyIn            = "in"
	KeyPrayer        = "prayer"
	KeyTime          = "time"
)

var prayerNames = map[Lang]map[string]string{
	Arabic: {
		"Fajr":       "الفجر",
		"Sunrise":    "الشروق",
		"Dhuhr":      "الظهر",
		"Asr":        "العصر",
		"Sunset":     "الغروب",
		"Maghrib":    "المغرب",
		"Isha":       "العشاء",
		"Imsak":      "الإمساك",
		"Midnight":   "منتصف الليل",
		"Firstthird": "الثلث الأول",
		"Lastthird":  "الثلث الأخير",
		"LastThird":  "الثلث الأخير",
	},
	English: {
		"Fajr":       "Fajr",
		"Sunrise":    "Sunrise",
		"Dhuhr":      "Dhuhr",
		"Asr":        "Asr",
		"Sunset":     "Sunset",
		"Maghrib":    "Maghrib",
		"Isha":       "Isha",
		"Imsak":      "Imsak",
		"Midnight":   "Midnight",
		"Firstthird": "First Third",
		"Lastthird":  "Last Third",
		"LastThird":  "Last Third",
	},
}

var labels = map[string]map[Lang]string{
	KeyNext:          {Arabic: "الحدث القادم: %s", English: "Next: %s"},
	KeyMethod:        {Arabic: "طريقة الحساب", English: "Calculation Method"},
	KeyToggle:        {Arabic: "English", English: "الإنجليزية"},
	KeyLastThirdOpen: {Arabic: "بداية الثلث الأخير", English: "Last Third"},
	KeyNight:         {Arabic: "الليل", English: "Night"},
	KeyLoading:       {Arabic: "جارٍ التحميل…", English: "Loading…"},
	KeyTitle:         {Arabic: "مواقيت الصلاة", English: "Prayer Times"},
	KeyHelp: {
		Arabic:  "l اللغة • m/M طريقة الحساب • r تحديث • q خروج",
		English: "l language • m/M method • r refresh • q quit",
	},
	KeyUnknownCity: {Arabic: "غير معروف", English: "Unknown"},
	KeyDate:        {Arabic: "التاريخ", English: "Date"},
	KeyDays:        {Arabic: "%s لمدة %d يوم", English: "%s, %d Days"},
	KeyNightLength: {Arabic: "طول الليل: %s", English: "Night length: %s"},
	KeyIn:          {Arabic: "بعد %s", English: "in %s"},
	KeyPrayer:      {Arabic: "الصلاة", English: "Prayer"},
	KeyTime:        {Arabic: "الوقت", English: "Time"},
}

// PrayerName returns the display name of a prayer or night event.
func PrayerName(lang Lang, name string) string {
	if n, ok := prayerNames[lang][name]; ok {
		return n
	}
	if n, ok := prayerNames[English][name]; ok {
		return n
	}
	return name
}

// T returns the label for key, formatting args into it when given.
func T(lang Lang, key string, args ...any) string {
	byLang, ok := labels[key]
	if !ok {
		return key
	}
	tmpl, ok := byLang[lang]
	if !ok {
		if tmpl, ok = byLang[English]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// NextLabel renders "Next: Asr" / "الحدث القادم: العصر".
func NextLabel(lang Lang, name string) string {
	return T(lang, KeyNext, PrayerName(lang, name))
}

// Location joins city and country with the language's comma.
func Location(lang Lang, city, country string) string {
	if city == "" {
		city = T(lang, KeyUnknownCity)
	}
	if country == "" {
		return city
	}
	if lang == Arabic {
		return city + "، " + country
	}
	return city + ", " + country
}
