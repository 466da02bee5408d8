package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: got %q, want 8080", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
	if cfg.EarningRate != 2 {
		t.Errorf("earning rate: got %d, want 2", cfg.EarningRate)
	}
	if cfg.MinWithdrawal != 5 {
		t.Errorf("min withdrawal: got %d, want 5", cfg.MinWithdrawal)
	}
	if !cfg.EnableScheduler {
		t.Error("expected scheduler enabled by default")
	}
}

func TestLoadAddrAndDSN(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_USER", "tester")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_HOST", "dbhost")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "testdb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("addr: got %q", cfg.Addr())
	}
	want := "postgres://tester:pw@dbhost:5433/testdb?sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("dsn: got %q, want %q", cfg.DSN(), want)
	}
}

func TestLoadProductionGuards(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	// Default password is refused in production.
	if _, err := Load(); err == nil {
		t.Error("expected error for default password in production")
	}

	t.Setenv("POSTGRES_PASSWORD", "real-secret")
	if _, err := Load(); err == nil {
		t.Error("expected error for missing admin key in production")
	}

	t.Setenv("ADMIN_API_KEY", "admin-secret")
	if _, err := Load(); err == nil {
		t.Error("expected error for missing paypal credentials in production")
	}

	t.Setenv("PAYPAL_CLIENT_ID", "cid")
	t.Setenv("PAYPAL_CLIENT_SECRET", "csecret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with full production env: %v", err)
	}
	if !cfg.IsProd() {
		t.Error("expected production mode")
	}
}

func TestLoadLedgerBounds(t *testing.T) {
	t.Setenv("EARNING_RATE", "-1")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative earning rate")
	}

	t.Setenv("EARNING_RATE", "3")
	t.Setenv("MIN_WITHDRAWAL", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero minimum withdrawal")
	}

	t.Setenv("MIN_WITHDRAWAL", "10")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EarningRate != 3 || cfg.MinWithdrawal != 10 {
		t.Errorf("ledger settings: rate %d min %d", cfg.EarningRate, cfg.MinWithdrawal)
	}
}

func TestEnvInt64OrDefault(t *testing.T) {
	t.Setenv("PLUME_TEST_INT", "not-a-number")
	if got := envInt64OrDefault("PLUME_TEST_INT", 7); got != 7 {
		t.Errorf("unparsable value: got %d, want fallback 7", got)
	}

	t.Setenv("PLUME_TEST_INT", "42")
	if got := envInt64OrDefault("PLUME_TEST_INT", 7); got != 42 {
		t.Errorf("parsable value: got %d, want 42", got)
	}
}
