package dashboard

import (
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var clientErrors = []error{
	errInvalidArea,
	errInvalidDefinition,
	errTableUnsupported,
	errHoverUnsupported,
	errWidgetIDsRequired,
	errDuplicateWidgetID,
	errUnknownArea,
	errViewerRequired,
	ErrUnknownColumn,
	ErrWidgetIDRequired,
	ErrInvalidPointer,
}

// IsNotFound reports whether err names a widget or dataset that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownWidget) || errors.Is(err, ErrUnknownDataset)
}

// IsInvalidRequest reports whether err was caused by the caller's input: missing ids,
// unknown areas or columns, unsupported interactions and schema violations.
func IsInvalidRequest(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	var verr *jsonschema.ValidationError
	return errors.As(err, &verr)
}
