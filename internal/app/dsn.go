package app

import (
	"net/url"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	traceWhitespace = regexp.MustCompile(`\s+`)
	// Bulk upserts of performances and outcomes bind one tuple per row.
	traceValueTuples = regexp.MustCompile(`(\(\$\d+(?:, \$\d+)*\))(?:, \(\$\d+(?:, \$\d+)*\))+`)
)

// postgresDSN is the connection string after pool-specific tweaks, plus the
// database name used to label spans and logs.
type postgresDSN struct {
	URL  string
	Name string
}

func parsePostgresDSN(raw string, disablePreparedBinary bool) postgresDSN {
	raw = strings.TrimSpace(raw)
	dsn := postgresDSN{URL: raw}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		dsn.Name = keywordDBName(raw)
		return dsn
	}

	dsn.Name = strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	if disablePreparedBinary {
		query := parsed.Query()
		if query.Get("disable_prepared_binary_result") == "" {
			query.Set("disable_prepared_binary_result", "yes")
			parsed.RawQuery = query.Encode()
			dsn.URL = parsed.String()
		}
	}
	return dsn
}

// keywordDBName reads dbname from a libpq "key=value" connection string.
func keywordDBName(raw string) string {
	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key != "dbname" {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return ""
}

// traceQuery collapses whitespace and multi-row VALUES lists so bulk writes of
// different sizes group under one span name.
func traceQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := traceWhitespace.ReplaceAllString(query, " ")
	normalized = traceValueTuples.ReplaceAllString(normalized, "$1, ...")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
