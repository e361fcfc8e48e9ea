package stream

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// PublishMetrics records batch publish outcomes.
	PublishMetrics interface {
		ObservePublish(err error, records int, started time.Time)
	}

	// ReadMetrics records read outcomes.
	ReadMetrics interface {
		ObserveRead(err error, records int)
	}
)
