package loader

import (
	"fmt"

	"github.com/katalvlaran/chiplet"
)

var (
	// ErrDocument indicates a file whose YAML does not have the expected shape.
	ErrDocument = fmt.Errorf("loader: malformed document: %w", chiplet.ErrConfiguration)

	// ErrRequired indicates a missing mandatory attribute.
	ErrRequired = fmt.Errorf("loader: required attribute missing: %w", chiplet.ErrConfiguration)
)

// docErrorf prefixes err with the document path and the element being decoded.
func docErrorf(path, element string, err error) error {
	return fmt.Errorf("%s: %s: %w", path, element, err)
}
