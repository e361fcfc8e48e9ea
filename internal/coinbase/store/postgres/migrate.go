package postgres

import "strings"

// MigrationURL rewrites a postgres DSN to the scheme registered by the golang-migrate pgx/v5 driver.
func MigrationURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}
