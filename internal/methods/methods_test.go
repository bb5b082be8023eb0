package methods

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
)

func gulfList() []Method {
	return FromAPI(map[string]api.MethodDef{
		"MAKKAH": {ID: 4, Name: "Umm Al-Qura University, Makkah"},
		"GULF":   {ID: 8, Name: "Gulf Region"},
		"KUWAIT": {ID: 9, Name: "Kuwait"},
		"QATAR":  {ID: 10, Name: "Qatar"},
	})
}

func ids(list []Method) []int {
	out := make([]int, len(list))
	for i, m := range list {
		out[i] = m.ID
	}
	return out
}

func TestFromAPI(t *testing.T) {
	list := FromAPI(map[string]api.MethodDef{
		"QATAR":  {ID: 10, Name: "Qatar"},
		"CUSTOM": {ID: 99},
		"MWL":    {ID: 3, Name: "Muslim World League"},
	})

	want := []Method{
		{ID: 3, Name: "Muslim World League", ArName: "رابطة العالم الإسلامي"},
		{ID: 10, Name: "Qatar", ArName: "قطر"},
		{ID: 99, Name: "Custom", ArName: "مخصص"},
	}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("FromAPI mismatch (-want +got):\n%s", diff)
	}
}

func TestOrder_DefaultsToUmmAlQura(t *testing.T) {
	got := Order(gulfList(), -1)
	assert.Equal(t, []int{4, 8, 9, 10}, ids(got))
}

func TestOrder_KeepsPreviousChoice(t *testing.T) {
	got := Order(gulfList(), 9)
	assert.Equal(t, []int{9, 4, 8, 10}, ids(got))
}

func TestOrder_UnknownPreviousFallsBackToDefault(t *testing.T) {
	got := Order(gulfList(), 42)
	assert.Equal(t, 4, got[0].ID)
	assert.Len(t, got, 4)
}

func TestOrder_NoDefaultInList(t *testing.T) {
	list := FromAPI(map[string]api.MethodDef{
		"QATAR": {ID: 10, Name: "Qatar"},
		"GULF":  {ID: 8, Name: "Gulf Region"},
	})
	got := Order(list, -1)
	assert.Equal(t, 8, got[0].ID)
}

func TestOrder_Empty(t *testing.T) {
	assert.Nil(t, Order(nil, 4))
}

func TestOrder_ContainsEveryMethodOnce(t *testing.T) {
	list := Builtin()
	got := Order(list, 2)
	require.Len(t, got, len(list))

	seen := map[int]bool{}
	for _, m := range got {
		assert.False(t, seen[m.ID], "method %d listed twice", m.ID)
		seen[m.ID] = true
	}
	assert.Equal(t, 2, got[0].ID)
}

func TestBuiltin_AllTranslated(t *testing.T) {
	for _, m := range Builtin() {
		assert.NotEqual(t, m.Name, m.ArName, "method %d (%s) has no Arabic name", m.ID, m.Name)
	}
}

func TestLabelAndKey(t *testing.T) {
	m := newMethod(4, "Umm Al-Qura University, Makkah")
	assert.Equal(t, "4", m.Key())
	assert.Equal(t, "أم القرى، مكة المكرمة", m.Label(i18n.Arabic))
	assert.Equal(t, "Umm Al-Qura University, Makkah", m.Label(i18n.English))
}

func TestCycle(t *testing.T) {
	list := gulfList()
	assert.Equal(t, 8, Cycle(list, 4, 1).ID)
	assert.Equal(t, 4, Cycle(list, 10, 1).ID)
	assert.Equal(t, 10, Cycle(list, 4, -1).ID)
	assert.Equal(t, 8, Cycle(list, 77, 1).ID)
	assert.Equal(t, Method{}, Cycle(nil, 4, 1))
}
