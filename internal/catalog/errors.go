// ABOUTME: Error taxonomy for catalog parsing and lookups.
// ABOUTME: Distinguishes malformed wire data from missing repositories or tags.

package catalog

import "fmt"

// FormatError reports a catalog payload that does not conform to the
// expected shape. It is surfaced to the caller and never silently recovered;
// a malformed catalog must not produce a partial index.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed catalog response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed catalog response: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a repository or tag absent from the catalog.
type NotFoundError struct {
	Repository string
	Tag        string
}

func (e *NotFoundError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("tag %q not found for repository %q", e.Tag, e.Repository)
	}
	return fmt.Sprintf("repository %q not found in catalog", e.Repository)
}
