package domain

import "errors"

var (
	// ErrNotFound means no marked aggregate block exists in the declaration.
	ErrNotFound = errors.New("storage aggregate not found")
	// ErrMalformedBlock means the block exists but an entry is not name: type.
	ErrMalformedBlock = errors.New("malformed storage block")

	ErrBaselineNotFound    = errors.New("baseline not found")
	ErrDeclarationNotFound = errors.New("declaration not found")
	ErrCorruptBaseline     = errors.New("corrupt baseline record")
)

// IsExtractionError reports whether err came from the extraction stage.
func IsExtractionError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformedBlock)
}
