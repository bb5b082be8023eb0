package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// sampleResponse returns a Makkah response shaped like the live API.
func sampleResponse() Response {
	return Response{
		Code:   200,
		Status: "OK",
		Data: Data{
			Timings: Timings{
				Fajr:       "05:03",
				Sunrise:    "06:19",
				Dhuhr:      "12:04",
				Asr:        "15:23",
				Sunset:     "17:49",
				Maghrib:    "17:49",
				Isha:       "19:19",
				Imsak:      "04:53",
				Midnight:   "23:26",
				Firstthird: "21:34",
				Lastthird:  "01:18",
			},
			Date: DateInfo{
				Readable:  "19 Oct 2026",
				Timestamp: "1792386000",
				Hijri: HijriDate{
					Day:     "08",
					Weekday: HijriWeekday{En: "Al Ithnayn", Ar: "الاثنين"},
					Month:   HijriMonth{Number: 5, En: "Jumādá al-ūlá", Ar: "جُمادى الأولى"},
					Year:    "1448",
				},
			},
			Meta: Meta{
				Latitude:  21.4225,
				Longitude: 39.8262,
				Timezone:  "Asia/Riyadh",
				Method:    MethodInfo{ID: 4, Name: "Umm Al-Qura University, Makkah"},
				School:    "STANDARD",
			},
		},
	}
}

func newTestClient(url string) *Client {
	c := NewClient()
	c.BaseURL = url
	return c
}

func TestNewClient(t *testing.T) {
	c := NewClient()
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}
}

func TestFetchByCoordinates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timings/19-10-2026" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") != "21.422500" {
			t.Errorf("latitude = %q", q.Get("latitude"))
		}
		if q.Get("longitude") != "39.826200" {
			t.Errorf("longitude = %q", q.Get("longitude"))
		}
		if q.Get("method") != "4" {
			t.Errorf("method = %q, want %q", q.Get("method"), "4")
		}
		if q.Get("school") != "1" {
			t.Errorf("school = %q, want %q", q.Get("school"), "1")
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	got, err := newTestClient(server.URL).FetchByCoordinates(context.Background(), date, 21.4225, 39.8262, 4, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Timings.Maghrib != "17:49" {
		t.Errorf("Maghrib = %q, want %q", got.Data.Timings.Maghrib, "17:49")
	}
	if got.Data.Date.Hijri.Weekday.Ar != "الاثنين" {
		t.Errorf("Hijri weekday ar = %q", got.Data.Date.Hijri.Weekday.Ar)
	}
}

func TestFetchByCoordinates_NoMethodOrSchool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if _, ok := q["method"]; ok {
			t.Errorf("method should not be set, got %q", q.Get("method"))
		}
		if _, ok := q["school"]; ok {
			t.Errorf("school should not be set, got %q", q.Get("school"))
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if _, err := newTestClient(server.URL).FetchByCoordinates(context.Background(), date, 21.4, 39.8, -1, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchByCity_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timingsByCity/19-10-2026" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("city") != "Makkah" || q.Get("country") != "Saudi Arabia" {
			t.Errorf("city/country = %q/%q", q.Get("city"), q.Get("country"))
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	got, err := newTestClient(server.URL).FetchByCity(context.Background(), date, "Makkah", "Saudi Arabia", 4, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Meta.Timezone != "Asia/Riyadh" {
		t.Errorf("Timezone = %q", got.Data.Meta.Timezone)
	}
}

func TestFetchByCoordinates_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantSub string
	}{
		{
			name: "http status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			},
			wantSub: "status 500: boom",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
			wantSub: "failed to decode",
		},
		{
			name: "api error code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"code":400,"status":"BAD_REQUEST","data":{}}`)
			},
			wantSub: "code=400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestClient(server.URL).FetchByCoordinates(context.Background(), time.Now(), 1, 1, -1, -1)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestFetchByCoordinates_ConnectionRefused(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	_, err := c.FetchByCoordinates(context.Background(), time.Now(), 1, 1, -1, -1)
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !strings.Contains(err.Error(), "API request failed") {
		t.Errorf("error = %q", err)
	}
}

func TestFetchByCoordinates_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestClient(server.URL).FetchByCoordinates(ctx, time.Now(), 1, 1, -1, -1); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestFetchMethods_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/methods" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"code":200,"status":"OK","data":{
			"MWL":{"id":3,"name":"Muslim World League","params":{"Fajr":18,"Isha":17}},
			"MAKKAH":{"id":4,"name":"Umm Al-Qura University, Makkah","params":{"Fajr":18.5,"Isha":"90 min"}},
			"CUSTOM":{"id":99}
		}}`)
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).FetchMethods(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3", len(got.Data))
	}
	if got.Data["MAKKAH"].ID != 4 {
		t.Errorf("MAKKAH id = %d, want 4", got.Data["MAKKAH"].ID)
	}
	if got.Data["CUSTOM"].Name != "" {
		t.Errorf("CUSTOM name = %q, want empty", got.Data["CUSTOM"].Name)
	}
}

func sampleCalendarResponse(days int) CalendarResponse {
	data := make([]Data, days)
	for i := range data {
		d := sampleResponse().Data
		d.Date.Gregorian = GregorianDate{
			Date:  fmt.Sprintf("%02d-10-2026", i+1),
			Day:   fmt.Sprintf("%02d", i+1),
			Month: GregorianMonth{Number: 10, En: "October"},
			Year:  "2026",
		}
		data[i] = d
	}
	return CalendarResponse{Code: 200, Status: "OK", Data: data}
}

func TestFetchCalendarByCoordinates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/2026/10" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(sampleCalendarResponse(31))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).FetchCalendarByCoordinates(context.Background(), 2026, 10, 21.4225, 39.8262, 4, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 31 {
		t.Errorf("len(Data) = %d, want 31", len(got.Data))
	}
}

func TestFetchCalendarByCity_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendarByCity/2026/11" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(sampleCalendarResponse(30))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).FetchCalendarByCity(context.Background(), 2026, 11, "Makkah", "Saudi Arabia", -1, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 30 {
		t.Errorf("len(Data) = %d, want 30", len(got.Data))
	}
}

func TestFetchCalendar_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":200,"status":"OK","data":[]}`)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).FetchCalendarByCoordinates(context.Background(), 2026, 10, 1, 1, -1, -1); err == nil {
		t.Fatal("expected error for empty calendar")
	}
}
