package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/ejardin/internal/models"
)

var (
	ErrInvalidCadence        = errors.New("invalid cadence")
	ErrInvalidReportKind     = errors.New("invalid report kind")
	ErrUnsupportedReportKind = errors.New("report kind has no scheduled generator")
	ErrDataUnavailable       = errors.New("report data unavailable")
)

// Window is the inclusive [Start, End] interval a periodic report covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// NextInstant returns the next due instant one cadence unit after from.
// Monthly arithmetic follows time.AddDate normalization, so Jan 31 + 1
// month lands in early March rather than clamping to Feb 28.
func NextInstant(from time.Time, cadence models.Cadence) (time.Time, error) {
	switch cadence {
	case models.CadenceDaily:
		return from.AddDate(0, 0, 1), nil
	case models.CadenceWeekly:
		return from.AddDate(0, 0, 7), nil
	case models.CadenceMonthly:
		return from.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidCadence, cadence)
	}
}

// LookbackWindow derives the reporting interval ending at now and reaching
// one cadence unit back. It is anchored to processing time, not to the
// schedule's due instant, so a delayed poll shifts the window rather than
// widening it.
func LookbackWindow(now time.Time, cadence models.Cadence) (Window, error) {
	switch cadence {
	case models.CadenceDaily:
		return Window{Start: now.AddDate(0, 0, -1), End: now}, nil
	case models.CadenceWeekly:
		return Window{Start: now.AddDate(0, 0, -7), End: now}, nil
	case models.CadenceMonthly:
		return Window{Start: now.AddDate(0, -1, 0), End: now}, nil
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidCadence, cadence)
	}
}
