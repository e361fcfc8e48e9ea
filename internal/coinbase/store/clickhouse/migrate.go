package clickhouse

import "strings"

// WithMultiStatement enables multi statement migrations on a golang-migrate clickhouse DSN.
func WithMultiStatement(dsn string) string {
	if strings.Contains(dsn, "x-multi-statement=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "x-multi-statement=true"
}
