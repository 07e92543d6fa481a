package app

import (
	"net/url"
	"strings"
)

// DB_URL accepts both forms the lib/pq driver does: a URL
// ("postgres://host/name?sslmode=disable") and a key=value DSN
// ("host=... dbname=..."). The helpers below work on either.

// normalizeDatabaseURL optionally tags the URL with
// disable_prepared_binary_result=yes, needed when a pooler in transaction
// mode sits between the engine and Postgres. Values that do not parse as
// a URL pass through untouched; the driver reports the better error.
func normalizeDatabaseURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	params := parsed.Query()
	if params.Has("disable_prepared_binary_result") {
		return raw
	}
	params.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = params.Encode()

	return parsed.String()
}

// databaseName pulls the database name out of either form, for the
// db.name trace attribute. Empty when the value carries no name.
func databaseName(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, pair := range strings.Fields(raw) {
		key, value, found := strings.Cut(pair, "=")
		if !found || key != "dbname" {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
