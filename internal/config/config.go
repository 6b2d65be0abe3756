package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=account_management_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultBranchID = "BR001"
const defaultNumberMaxAttempts = 5

type Config struct {
	DatabaseDSN       string
	MigrationsDir     string
	HTTPAddr          string
	DefaultBranchID   string
	NumberMaxAttempts int
	SeedSampleData    bool
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		addr = defaultHTTPAddr
	}

	branchID := strings.TrimSpace(os.Getenv("DEFAULT_BRANCH_ID"))
	if branchID == "" {
		branchID = defaultBranchID
	}

	maxAttempts := defaultNumberMaxAttempts
	if raw := strings.TrimSpace(os.Getenv("ACCOUNT_NUMBER_MAX_ATTEMPTS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return Config{}, fmt.Errorf("invalid ACCOUNT_NUMBER_MAX_ATTEMPTS %q", raw)
		}
		maxAttempts = parsed
	}

	seed := false
	if raw := strings.TrimSpace(os.Getenv("SEED_SAMPLE_DATA")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SEED_SAMPLE_DATA %q", raw)
		}
		seed = parsed
	}

	return Config{
		DatabaseDSN:       normalizeConnectionString(conn),
		MigrationsDir:     "migrations",
		HTTPAddr:          addr,
		DefaultBranchID:   branchID,
		NumberMaxAttempts: maxAttempts,
		SeedSampleData:    seed,
	}, nil
}

// normalizeConnectionString accepts either a libpq keyword string or the
// semicolon-separated form used by ops tooling and rewrites the latter into
// libpq keywords.
func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
