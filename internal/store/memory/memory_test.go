package memory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"moneytracker/internal/core"
)

func sample(day int, cents int64) core.Transaction {
	return core.Transaction{
		Date:     time.Date(2024, 3, day, 0, 0, 0, 0, time.Local),
		Title:    "Target",
		Category: "Grocery",
		Amount:   core.Money{Cents: cents},
	}
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := New()

	ref, err := s.Append(ctx, sample(15, -4250))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}

	txs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 || txs[0].Amount.Cents != -4250 {
		t.Fatalf("list = %+v", txs)
	}

	// The returned slice is a copy.
	txs[0].Title = "mutated"
	again, _ := s.List(ctx)
	if again[0].Title != "Target" {
		t.Error("List exposed internal slice")
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.Transaction{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestWriteThroughAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.csv")

	s, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile with missing file: %v", err)
	}
	if _, err := s.Append(ctx, sample(15, -4250)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.Append(ctx, sample(16, 350000)); err != nil {
		t.Fatalf("append: %v", err)
	}

	// A second store over the same file sees both rows.
	other, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	txs, _ := other.List(ctx)
	if len(txs) != 2 {
		t.Fatalf("seeded len = %d, want 2", len(txs))
	}

	// Reload picks up rows appended behind this store's back.
	n, err := s.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n != 2 {
		t.Errorf("reload count = %d, want 2", n)
	}
}

func TestPing(t *testing.T) {
	if err := New().Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
