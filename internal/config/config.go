package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ProjectID      string
	Region         string
	LogLevel       string
	Port           string
	VertexModel    string
	AITTL          time.Duration
	AuthEnabled    bool
	AllowedOrigins []string

	// FirestoreDatabase holds chat history; empty means "(default)".
	FirestoreDatabase string

	// SheetsCredentialsSecret is a Secret Manager version name holding a
	// service account key. Empty means Application Default Credentials.
	SheetsCredentialsSecret string

	// SheetsReadsPerMinute caps Sheets value reads per instance; 0 disables.
	SheetsReadsPerMinute int

	Dashboard SheetSource
	Checklist SheetSource
	StockOut  SheetSource

	// StockOutOutletColumn is the header used to group stock-out items.
	StockOutOutletColumn string
}

// SheetSource names one tab (or A1 range) of one spreadsheet.
type SheetSource struct {
	SpreadsheetID string
	Range         string
}

func New() *Config {
	dashboardID := os.Getenv("DASHBOARDSPREADSHEETID")

	return &Config{
		ProjectID:               os.Getenv("PROJECTID"),
		Region:                  os.Getenv("REGION"),
		LogLevel:                os.Getenv("LOGLEVEL"),
		Port:                    getOr("PORT", "8080"),
		VertexModel:             getOr("VERTEXMODEL", "gemini-1.5-flash"),
		FirestoreDatabase:       os.Getenv("FIRESTOREDATABASE"),
		AITTL:                   getDuration("AITTL", 24*time.Hour),
		AuthEnabled:             getBool("AUTHENABLED"),
		AllowedOrigins:          getList("ALLOWEDORIGINS", []string{"*"}),
		SheetsCredentialsSecret: os.Getenv("SHEETSCREDENTIALSSECRET"),
		SheetsReadsPerMinute:    getInt("SHEETSREADSPERMINUTE", 60),
		Dashboard: SheetSource{
			SpreadsheetID: dashboardID,
			Range:         getOr("DASHBOARDRANGE", "Dashboard!A1:Z60"),
		},
		Checklist: SheetSource{
			SpreadsheetID: os.Getenv("CHECKLISTSPREADSHEETID"),
			Range:         getOr("CHECKLISTRANGE", "Form Responses 1"),
		},
		StockOut: SheetSource{
			SpreadsheetID: getOr("STOCKOUTSPREADSHEETID", dashboardID),
			Range:         getOr("STOCKOUTRANGE", "Stock Out"),
		},
		StockOutOutletColumn: getOr("STOCKOUTOUTLETCOLUMN", "Outlet"),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errList []error
	if c.ProjectID == "" {
		errList = append(errList, errors.New("PROJECTID is required"))
	}
	if c.Dashboard.SpreadsheetID == "" {
		errList = append(errList, errors.New("DASHBOARDSPREADSHEETID is required"))
	}
	if c.Checklist.SpreadsheetID == "" {
		errList = append(errList, errors.New("CHECKLISTSPREADSHEETID is required"))
	}
	return errors.Join(errList...)
}

// ---- Helpers ----

func getOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
