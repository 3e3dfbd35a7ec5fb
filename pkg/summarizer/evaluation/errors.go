package evaluation

import "github.com/pkg/errors"

// Validation sentinels. Evaluation fails fast on malformed input before any
// scoring work starts; callers can test with errors.Is.
var (
	ErrEmptyInput     = errors.New("predictions and references must be non-empty")
	ErrLengthMismatch = errors.New("predictions and references must have the same length")
	ErrUnknownMetric  = errors.New("unknown metric")
)

func validateInputs(predictions, references []string) error {
	if len(predictions) == 0 || len(references) == 0 {
		return ErrEmptyInput
	}
	if len(predictions) != len(references) {
		return errors.Wrapf(ErrLengthMismatch, "%d predictions, %d references", len(predictions), len(references))
	}
	return nil
}
