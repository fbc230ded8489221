package main

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VERIFY_TOKEN", "loanhelpline_verify")
	t.Setenv("WHATSAPP_TOKEN", "EAAM-test")
	t.Setenv("PHONE_NUMBER_ID", "1041740029016016")
	t.Setenv("SHEET_ID", "sheet-id")
	t.Setenv("ADMIN_PHONE", "919999999999")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "./credentials.json")
	t.Setenv("GOOGLE_CREDENTIALS_JSON", "")
	t.Setenv("LEADS_TAB", "")
	t.Setenv("LOAN_MENU", "")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("OFFER_MATCH_SUBSTRING", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("OFFER_CACHE_MINUTES", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "10000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.LeadsTab != "Sheet1" {
		t.Errorf("leads tab = %q", cfg.LeadsTab)
	}
	if len(cfg.LoanMenu) != len(defaultLoanMenu) {
		t.Errorf("menu size = %d", len(cfg.LoanMenu))
	}
	if cfg.SubstringMatch {
		t.Error("substring matching should default off")
	}
}

func TestLoadConfigFailsFastOnMissingVar(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing WHATSAPP_TOKEN")
	} else if !strings.Contains(err.Error(), "WHATSAPP_TOKEN") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestLoadConfigRequiresGoogleCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when both credential sources are missing")
	}
}

func TestLoadConfigRejectsUnmappedMenuLabel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOAN_MENU", "Home Loan,Gold Loan")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for menu label without a tab mapping")
	} else if !strings.Contains(err.Error(), "Gold Loan") {
		t.Errorf("error should name the label: %v", err)
	}
}

func TestLoadConfigCustomMenu(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOAN_MENU", "Home Loan, Personal Loan ,Business Loan")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Home Loan", "Personal Loan", "Business Loan"}
	if len(cfg.LoanMenu) != len(want) {
		t.Fatalf("menu = %v", cfg.LoanMenu)
	}
	for i := range want {
		if cfg.LoanMenu[i] != want[i] {
			t.Errorf("menu[%d] = %q, want %q", i, cfg.LoanMenu[i], want[i])
		}
	}
}
