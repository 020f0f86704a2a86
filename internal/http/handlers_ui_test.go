package http

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestIndexRendersShell(t *testing.T) {
	srv := newTestServer(t, sampleStore(t), &fakeCreator{})

	rr := get(t, srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Money Tracker", "transaction-form", "category-chart", "trends-chart", "Coming Soon"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	// Known categories populate the picker alongside the create sentinel.
	if !strings.Contains(body, "Groceries") || !strings.Contains(body, CreateNewSentinel) {
		t.Error("index missing category options")
	}
}

func TestIndexStoreDownShowsErrorPage(t *testing.T) {
	srv := newTestServer(t, &fakeStore{pingErr: context.DeadlineExceeded}, &fakeCreator{})

	rr := get(t, srv, "/")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "check if the server is running") {
		t.Errorf("error page missing guidance, body: %s", rr.Body.String())
	}
}

func TestIndexUnknownPathIs404(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCreator{})
	if rr := get(t, srv, "/nope"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestSummarySection(t *testing.T) {
	srv := newTestServer(t, sampleStore(t), &fakeCreator{})

	rr := get(t, srv, "/ui/summary")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "$2,500.00") {
		t.Errorf("summary missing deposits, body: %s", body)
	}
	if !strings.Contains(body, "+$1,239.00") {
		t.Errorf("summary missing net amount, body: %s", body)
	}
}

func TestSummarySection_StoreFailureFallsBackToZeros(t *testing.T) {
	srv := newTestServer(t, &fakeStore{listErr: context.DeadlineExceeded}, &fakeCreator{})

	rr := get(t, srv, "/ui/summary")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, partial must degrade instead of failing", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "$0.00") {
		t.Errorf("fallback summary should show zeroed tiles, body: %s", body)
	}
	if !strings.Contains(body, "unreachable") {
		t.Errorf("fallback summary should carry a notice, body: %s", body)
	}
}

func TestCalendarSection_CellCount(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCreator{})

	// June 2022 starts on a Wednesday and has 30 days: 3 leading blanks
	// and 30 day cells.
	rr := get(t, srv, "/ui/calendar?year=2022&month=6")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if got := strings.Count(body, `class="day blank"`); got != 3 {
		t.Errorf("blank cells = %d, want 3", got)
	}
	if got := strings.Count(body, `class="day"`); got != 30 {
		t.Errorf("day cells = %d, want 30", got)
	}
	if !strings.Contains(body, "June 2022") {
		t.Error("calendar missing month heading")
	}
}

func TestCalendarSection_ShowsEvents(t *testing.T) {
	srv := newTestServer(t, sampleStore(t), &fakeCreator{})

	rr := get(t, srv, "/ui/calendar?year=2024&month=2")
	body := rr.Body.String()
	if !strings.Contains(body, "Rent") || !strings.Contains(body, "Diner") {
		t.Errorf("calendar missing February events, body: %s", body)
	}
	if strings.Contains(body, "Paycheck") {
		t.Error("January transaction leaked into February calendar")
	}
}

func TestRecentSection(t *testing.T) {
	srv := newTestServer(t, sampleStore(t), &fakeCreator{})

	rr := get(t, srv, "/ui/recent")
	body := rr.Body.String()
	if !strings.Contains(body, "Diner") || !strings.Contains(body, "Paycheck") {
		t.Errorf("recent list missing rows, body: %s", body)
	}
	// Newest row renders before older ones.
	if strings.Index(body, "Diner") > strings.Index(body, "Paycheck") {
		t.Error("recent list not newest first")
	}
}

func TestRecentSection_Empty(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCreator{})

	rr := get(t, srv, "/ui/recent")
	if !strings.Contains(rr.Body.String(), "No transactions found") {
		t.Errorf("empty recent list message missing, body: %s", rr.Body.String())
	}
}

func TestStaticScripts_ClientBehaviors(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCreator{})

	tests := []struct {
		name string
		path string
		want []string
	}{
		{
			name: "trend ticks rendered as whole-dollar currency",
			path: "/static/js/dashboard.js",
			want: []string{`"$" + Math.round(value).toLocaleString()`, "ticks"},
		},
		{
			name: "amount check accepts ledger-style amounts",
			path: "/static/js/form.js",
			want: []string{"isNumericAmount", `replace(/[$,\s]/g, "")`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, srv, tt.path)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			for _, want := range tt.want {
				if !strings.Contains(rr.Body.String(), want) {
					t.Errorf("%s missing %q", tt.path, want)
				}
			}
		})
	}
}
