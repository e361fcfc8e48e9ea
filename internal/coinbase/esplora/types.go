package esplora

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records metrics for explorer requests.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
