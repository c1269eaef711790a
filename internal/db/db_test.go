package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/diewo77/autoparts/internal/config"
	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store/gormstore"
	"github.com/diewo77/autoparts/internal/store/memory"
)

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "  ", ""},
		{"url", "postgres://u:p@h:5432/db", "postgres://u:p@h:5432/db"},
		{"quoted kv", `"host=h  user=u dbname=d"`, "host=h user=u dbname=d sslmode=disable"},
		{"kv with sslmode", "host=h user=u dbname=d sslmode=require", "host=h user=u dbname=d sslmode=require"},
		{"garbage", "not-a-dsn", "not-a-dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDSN(tt.in); got != tt.want {
				t.Errorf("NormalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToURLDSN(t *testing.T) {
	got := ToURLDSN("host=db port=5432 user=app password=secret dbname=autoparts sslmode=disable")
	want := "postgres://app:secret@db:5432/autoparts?sslmode=disable"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := ToURLDSN("host=db dbname=x"); got != "host=db dbname=x" {
		t.Fatalf("incomplete dsn should be unchanged, got %q", got)
	}
}

func TestMaskDSN(t *testing.T) {
	if got := MaskDSN("host=db password=secret dbname=x"); got != "host=db password=*** dbname=x" {
		t.Errorf("kv: %q", got)
	}
	if got := MaskDSN("postgres://app:secret@db/x"); got != "postgres://app:xxxxx@db/x" {
		t.Errorf("url: %q", got)
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenSQLiteMigrateAndSeed(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "autoparts.db")}
	conn, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := gormstore.New(conn)
	ctx := context.Background()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	if err := Seed(ctx, st, now); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var invoices int64
	conn.Model(&models.Invoice{}).Count(&invoices)
	var items int64
	conn.Model(&models.InvoiceItem{}).Count(&items)
	if invoices != 2 || items != 3 {
		t.Fatalf("expected 2 invoices with 3 items, got %d and %d", invoices, items)
	}
	inv, err := st.Invoices().Get(ctx, "INV-001")
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if inv.InvoiceNumber != "FACT-2024-0001" || inv.Status != models.InvoiceStatusPaid {
		t.Fatalf("unexpected seeded invoice %+v", inv)
	}
}

func TestSeedIdempotent(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	now := time.Now()
	if err := Seed(ctx, st, now); err != nil {
		t.Fatal(err)
	}
	// local edits survive a second seed
	p, err := st.Parts().Get(ctx, "VW-GOLF4-ALT-001")
	if err != nil {
		t.Fatal(err)
	}
	p.QuantityInStock = 42
	if _, err := st.Parts().Put(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := Seed(ctx, st, now); err != nil {
		t.Fatal(err)
	}

	parts, _ := st.Parts().List(ctx)
	customers, _ := st.Customers().List(ctx)
	expenses, _ := st.Expenses().List(ctx)
	if len(parts) != 3 || len(customers) != 2 || len(expenses) != 2 {
		t.Fatalf("duplicated or missing seed data: parts=%d customers=%d expenses=%d", len(parts), len(customers), len(expenses))
	}
	p, _ = st.Parts().Get(ctx, "VW-GOLF4-ALT-001")
	if p.QuantityInStock != 42 {
		t.Fatalf("seed overwrote stock: %d", p.QuantityInStock)
	}
	if customers[0].ID != "CUST-002" {
		t.Fatalf("expected Garage Solide listed first, got %s", customers[0].ID)
	}
	s, err := st.Settings().Get(ctx)
	if err != nil || s.CurrencyCode != "TND" {
		t.Fatalf("settings not seeded: %+v %v", s, err)
	}
}
