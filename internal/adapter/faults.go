package adapter

import (
	"fmt"

	"github.com/beevik/etree"
)

// Exchange ResponseCode values with dedicated handling. The full catalog is
// documented under "EWS response codes"; everything unrecognized maps to
// ErrExchangeFault.
const (
	codeNoError              = "NoError"
	codeStaleChangeKey       = "ErrorChangeKeyRequiredForWriteOperations"
	codeItemNotFound         = "ErrorItemNotFound"
	codeIrresolvable         = "ErrorIrresolvableConflict"
	codeTransient            = "ErrorInternalServerTransientError"
	codeOccurrenceOutOfRange = "ErrorCalendarOccurrenceIndexIsOutOfRecurrenceRange"
)

// classifyFaults inspects every ResponseCode element in the response and
// maps the first non-success code to its typed failure. The occurrence
// out-of-range code is an expected partial-result condition, not an error,
// and is skipped; a response carrying no ResponseCode at all is malformed.
func classifyFaults(doc *etree.Document) error {
	codes := doc.FindElements("//m:ResponseCode")
	if len(codes) == 0 {
		return ErrMissingResponseCode
	}

	for _, code := range codes {
		switch text := code.Text(); text {
		case codeNoError:
		case codeOccurrenceOutOfRange:
			// Some or all of the requested occurrence indexes fall outside
			// the recurrence; the caller keeps whatever did parse.
		case codeStaleChangeKey:
			return fmt.Errorf("%w (%s)", ErrStaleChangeKey, text)
		case codeItemNotFound:
			return fmt.Errorf("%w (%s)", ErrItemNotFound, text)
		case codeIrresolvable:
			return fmt.Errorf("%w (%s)", ErrIrresolvableConflict, text)
		case codeTransient:
			return fmt.Errorf("%w (%s)", ErrTransient, text)
		default:
			return fmt.Errorf("%w (%s)", ErrExchangeFault, text)
		}
	}

	return nil
}
