package port

import (
	"time"

	"clipbot/internal/core/domain"
)

type DispatchMetrics interface {
	ObserveDispatch(command string, outcome domain.DispatchOutcome, elapsed time.Duration)
}
