package outfit

import "fmt"

// ErrorKind enumerates every domain rule the validator can flag. Validation
// failures are data, not Go errors: the engine never aborts on an
// unsatisfiable outfit, it repairs or degrades.
type ErrorKind string

const (
	ErrDuplicateCategory       ErrorKind = "DUPLICATE_CATEGORY"
	ErrWeatherMismatch         ErrorKind = "WEATHER_MISMATCH"
	ErrLayeringConflict        ErrorKind = "LAYERING_CONFLICT"
	ErrOccasionMismatch        ErrorKind = "OCCASION_MISMATCH"
	ErrStyleConflict           ErrorKind = "STYLE_CONFLICT"
	ErrMissingRequiredCategory ErrorKind = "MISSING_REQUIRED_CATEGORY"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ValidationError is one typed rule violation. Category points at the
// structural slot the repair strategies should work on.
type ValidationError struct {
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	ItemIDs  []uint    `json:"offending_item_ids"`
	Category Category  `json:"category"`
	Severity Severity  `json:"severity"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s[%s]: %s (items %v)", e.Kind, e.Category, e.Message, e.ItemIDs)
}

// HasKind reports whether errs contains at least one error of the given kind.
func HasKind(errs []ValidationError, kind ErrorKind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func errorsOfKind(errs []ValidationError, kinds ...ErrorKind) []ValidationError {
	var out []ValidationError
	for _, e := range errs {
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
