// Package methods builds the calculation-method picker: names in both
// languages, the default selection, and Arabic-collated ordering.
package methods

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
)

// DefaultID is Umm Al-Qura University, Makkah.
const DefaultID = 4

// Method is one entry of the picker.
type Method struct {
	ID     int
	Name   string
	ArName string
}

// Key is the picker value, the decimal ID.
func (m Method) Key() string {
	return strconv.Itoa(m.ID)
}

// Label returns the name to show for lang.
func (m Method) Label(lang i18n.Lang) string {
	if lang == i18n.Arabic {
		return m.ArName
	}
	return m.Name
}

func newMethod(id int, name string) Method {
	if name == "" {
		name = "Custom"
	}
	return Method{ID: id, Name: name, ArName: i18n.MethodNameAr(name)}
}

// FromAPI converts the /methods payload, sorted by ID.
func FromAPI(defs map[string]api.MethodDef) []Method {
	out := make([]Method, 0, len(defs))
	for _, d := range defs {
		out = append(out, newMethod(d.ID, d.Name))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Builtin is used when /methods cannot be reached.
func Builtin() []Method {
	out := make([]Method, len(builtin))
	for i, b := range builtin {
		out[i] = newMethod(b.ID, b.Name)
	}
	return out
}

var builtin = []struct {
	ID   int
	Name string
}{
	{0, "Shia Ithna-Ashari, Leva Institute, Qum"},
	{1, "University of Islamic Sciences, Karachi"},
	{2, "Islamic Society of North America (ISNA)"},
	{3, "Muslim World League"},
	{4, "Umm Al-Qura University, Makkah"},
	{5, "Egyptian General Authority of Survey"},
	{7, "Institute of Geophysics, University of Tehran"},
	{8, "Gulf Region"},
	{9, "Kuwait"},
	{10, "Qatar"},
	{11, "Majlis Ugama Islam Singapura, Singapore"},
	{12, "Union Organization Islamic de France"},
	{13, "Diyanet İşleri Başkanlığı, Turkey (experimental)"},
	{14, "Spiritual Administration of Muslims of Russia"},
	{15, "Moonsighting Committee Worldwide (Moonsighting.com)"},
	{16, "Dubai (experimental)"},
	{17, "Jabatan Kemajuan Islam Malaysia (JAKIM)"},
	{18, "Tunisia"},
	{19, "Algeria"},
	{20, "Kementerian Agama Republik Indonesia"},
	{21, "Morocco"},
	{22, "Comunidade Islamica de Lisboa"},
	{23, "Ministry of Awqaf, Islamic Affairs and Holy Places, Jordan"},
	{99, ""},
}

// arabicTag sorts Arabic text with punctuation treated as ignorable.
var arabicTag = language.MustParse("ar-u-ka-shifted")

// Order puts the selected method first and the rest by Arabic name.
// The selection is previous when it is in the list, else DefaultID, else the
// lowest ID. Pass previous < 0 for "no previous choice".
func Order(list []Method, previous int) []Method {
	if len(list) == 0 {
		return nil
	}

	sel, ok := find(list, previous)
	if !ok {
		if sel, ok = find(list, DefaultID); !ok {
			sel = list[0]
			for _, m := range list[1:] {
				if m.ID < sel.ID {
					sel = m
				}
			}
		}
	}

	others := make([]Method, 0, len(list)-1)
	for _, m := range list {
		if m.ID != sel.ID {
			others = append(others, m)
		}
	}

	c := collate.New(arabicTag)
	sort.SliceStable(others, func(i, j int) bool {
		return c.CompareString(others[i].ArName, others[j].ArName) < 0
	})

	return append([]Method{sel}, others...)
}

// Cycle returns the method step positions away from currentID in list,
// wrapping around. An unknown currentID starts from the top.
func Cycle(list []Method, currentID, step int) Method {
	if len(list) == 0 {
		return Method{}
	}
	idx := 0
	for i, m := range list {
		if m.ID == currentID {
			idx = i
			break
		}
	}
	n := len(list)
	return list[((idx+step)%n+n)%n]
}

func find(list []Method, id int) (Method, bool) {
	if id < 0 {
		return Method{}, false
	}
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Method{}, false
}
