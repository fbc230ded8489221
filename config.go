package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

/*
ENV:

VERIFY_TOKEN=loanhelpline_verify
WHATSAPP_TOKEN=EAAM...
PHONE_NUMBER_ID=1041740029016016
SHEET_ID=1SASOVVvP4zVdqvaBUBjqkjeMcrmgU_dYmlfuWKvX2yU
ADMIN_PHONE=919876543210

# One of the two credential sources is required
GOOGLE_APPLICATION_CREDENTIALS=./credentials.json
GOOGLE_CREDENTIALS_JSON={"client_email":...}

# Optional
LEADS_TAB=Sheet1
LOAN_MENU=Home Loan,Personal Loan,...
OFFER_MATCH_SUBSTRING=false
REDIS_ADDR=localhost:6379
SESSION_TTL_HOURS=24
OFFER_CACHE_MINUTES=5

# Ambiente y puerto
APP_ENV=dev
PORT=10000
*/

// ---------------------
// Env loader
// ---------------------

func loadEnvFiles() {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "dev"
	}

	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env." + env)

	finalEnv := os.Getenv("APP_ENV")
	if finalEnv == "" {
		finalEnv = env
	}
	log.Printf("🔧 APP_ENV=%s (loaded .env and .env.%s if present)", finalEnv, env)
}

// defaultLoanMenu is the richest menu seen in production; deployments can
// shrink or reorder it via LOAN_MENU.
var defaultLoanMenu = []string{
	"Home Loan",
	"Transfer Your Loan",
	"Personal Loan",
	"Business Loan",
	"Mortgage Loan",
	"Industrial Property Loan",
	"Commercial Property Loan",
}

type Config struct {
	VerifyToken   string
	WhatsAppToken string
	PhoneNumberID string

	SheetID         string
	LeadsTab        string
	GoogleCredsFile string
	GoogleCredsJSON string

	AdminPhone string

	LoanMenu       []string
	SubstringMatch bool

	RedisAddr     string
	SessionTTL    time.Duration
	OfferCacheTTL time.Duration

	Port string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		VerifyToken:     getEnv("VERIFY_TOKEN", ""),
		WhatsAppToken:   getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID:   getEnv("PHONE_NUMBER_ID", ""),
		SheetID:         getEnv("SHEET_ID", ""),
		LeadsTab:        getEnv("LEADS_TAB", "Sheet1"),
		GoogleCredsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		GoogleCredsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		AdminPhone:      getEnv("ADMIN_PHONE", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		Port:            getEnv("PORT", "10000"),
	}

	cfg.LoanMenu = defaultLoanMenu
	if raw := getEnv("LOAN_MENU", ""); raw != "" {
		var menu []string
		for _, label := range strings.Split(raw, ",") {
			label = strings.TrimSpace(label)
			if label != "" {
				menu = append(menu, label)
			}
		}
		cfg.LoanMenu = menu
	}

	cfg.SubstringMatch = strings.EqualFold(getEnv("OFFER_MATCH_SUBSTRING", "false"), "true")
	cfg.SessionTTL = time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour
	cfg.OfferCacheTTL = time.Duration(getEnvInt("OFFER_CACHE_MINUTES", 5)) * time.Minute

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"VERIFY_TOKEN":    c.VerifyToken,
		"WHATSAPP_TOKEN":  c.WhatsAppToken,
		"PHONE_NUMBER_ID": c.PhoneNumberID,
		"SHEET_ID":        c.SheetID,
		"ADMIN_PHONE":     c.AdminPhone,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("missing required environment variable: %s", name)
		}
	}

	if c.GoogleCredsFile == "" && c.GoogleCredsJSON == "" {
		return fmt.Errorf("set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS_JSON")
	}

	if len(c.LoanMenu) == 0 {
		return fmt.Errorf("LOAN_MENU resolved to an empty menu")
	}

	// Every menu label must resolve to a sheet tab, otherwise completed
	// leads for that label could never be matched to an offer table.
	for _, label := range c.LoanMenu {
		if _, ok := TabForLoanType(label); !ok {
			return fmt.Errorf("menu label %q has no sheet tab mapping", label)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("⚠️ %s=%q is not a positive integer, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
