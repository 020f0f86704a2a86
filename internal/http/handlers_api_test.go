package http

import (
	"context"
	"net/http"
	"testing"
)

func TestAPIAppend_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "missing title",
			body:    `{"category": "Groceries", "amount": "-42.50", "date": "2024-03-05"}`,
			wantMsg: "Missing required field: title",
		},
		{
			name:    "blank title",
			body:    `{"title": "  ", "category": "Groceries", "amount": "-42.50", "date": "2024-03-05"}`,
			wantMsg: "Missing required field: title",
		},
		{
			name:    "missing category",
			body:    `{"title": "Grocery Store", "amount": "-42.50", "date": "2024-03-05"}`,
			wantMsg: "Missing required field: category",
		},
		{
			name:    "sentinel category",
			body:    `{"title": "Grocery Store", "category": "__create_new__", "amount": "-42.50", "date": "2024-03-05"}`,
			wantMsg: "Missing required field: category",
		},
		{
			name:    "missing amount",
			body:    `{"title": "Grocery Store", "category": "Groceries", "date": "2024-03-05"}`,
			wantMsg: "Missing required field: amount",
		},
		{
			name:    "missing date",
			body:    `{"title": "Grocery Store", "category": "Groceries", "amount": "-42.50"}`,
			wantMsg: "Missing required field: date",
		},
		{
			name:    "amount not a number",
			body:    `{"title": "Grocery Store", "category": "Groceries", "amount": "forty", "date": "2024-03-05"}`,
			wantMsg: "Amount must be a valid number",
		},
		{
			name:    "amount wrong type",
			body:    `{"title": "Grocery Store", "category": "Groceries", "amount": true, "date": "2024-03-05"}`,
			wantMsg: "Amount must be a valid number",
		},
		{
			name:    "date wrong format",
			body:    `{"title": "Grocery Store", "category": "Groceries", "amount": "-42.50", "date": "03/05/2024"}`,
			wantMsg: "Date must be in YYYY-MM-DD format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := &fakeCreator{}
			srv := newTestServer(t, &fakeStore{}, cr)

			rr := postJSON(t, srv, "/api/append", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rr.Code, rr.Body.String())
			}
			m := decodeMap(t, rr)
			if m["success"] != false {
				t.Errorf("success = %v, want false", m["success"])
			}
			if m["message"] != tt.wantMsg {
				t.Errorf("message = %q, want %q", m["message"], tt.wantMsg)
			}
			if len(cr.created) != 0 {
				t.Errorf("nothing should be stored, got %v", cr.created)
			}
		})
	}
}

func TestAPIAppend_Success(t *testing.T) {
	cr := &fakeCreator{}
	srv := newTestServer(t, &fakeStore{}, cr)

	rr := postJSON(t, srv, "/api/append",
		`{"title": "Grocery Store", "category": "groceries", "amount": "-42.50", "date": "2024-03-05"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}
	m := decodeMap(t, rr)
	if m["success"] != true {
		t.Errorf("success = %v", m["success"])
	}
	if m["message"] != "Transaction added successfully" {
		t.Errorf("message = %q", m["message"])
	}

	if len(cr.created) != 1 {
		t.Fatalf("created = %d transactions", len(cr.created))
	}
	tx := cr.created[0]
	if tx.Amount.Cents != -4250 {
		t.Errorf("cents = %d, want -4250", tx.Amount.Cents)
	}
	if tx.Category != "Groceries" {
		t.Errorf("category = %q, want title-cased Groceries", tx.Category)
	}
}

func TestAPIAppend_NumericAmount(t *testing.T) {
	cr := &fakeCreator{}
	srv := newTestServer(t, &fakeStore{}, cr)

	rr := postJSON(t, srv, "/api/append",
		`{"title": "Paycheck", "category": "Income", "amount": 2500, "date": "2024-03-01"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}
	if len(cr.created) != 1 || cr.created[0].Amount.Cents != 250000 {
		t.Fatalf("created = %+v", cr.created)
	}
}

func TestAPIAppend_StoreFailure(t *testing.T) {
	cr := &fakeCreator{createErr: context.DeadlineExceeded}
	srv := newTestServer(t, &fakeStore{}, cr)

	rr := postJSON(t, srv, "/api/append",
		`{"title": "Grocery Store", "category": "Groceries", "amount": "-42.50", "date": "2024-03-05"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	m := decodeMap(t, rr)
	if m["success"] != false {
		t.Errorf("success = %v", m["success"])
	}
}

func TestAPIAppend_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCreator{})

	rr := postJSON(t, srv, "/api/append", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAPIAppend_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCreator{})

	rr := get(t, srv, "/api/append")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

func TestAPIAppend_InvalidatesCache(t *testing.T) {
	st := sampleStore(t)
	srv := newTestServer(t, st, storeCreator{st})

	// Warm the cache, then append, then expect the new row to appear.
	if rr := get(t, srv, "/api/summary"); rr.Code != http.StatusOK {
		t.Fatal("warmup failed")
	}

	rr := postJSON(t, srv, "/api/append",
		`{"title": "Coffee", "category": "Dining", "amount": "-4.75", "date": "2024-02-15"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("append status = %d", rr.Code)
	}

	rr = get(t, srv, "/api/summary")
	m := decodeMap(t, rr)
	if m["totalTransactions"] != float64(5) {
		t.Errorf("totalTransactions = %v, want 5 after append", m["totalTransactions"])
	}
}
