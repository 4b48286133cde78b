package normalize

import "fmt"

// NormalizationError reports a payload value that could not be mapped to the
// canonical model. The offending record is skipped; the rest of the batch is
// unaffected.
type NormalizationError struct {
	Entity string
	Field  string
	Raw    string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s: field %q: unusable value %q", e.Entity, e.Field, e.Raw)
}
