package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedImport is matched by every ResolutionError
	ErrUnsupportedImport = errors.New("unsupported import")

	// ErrModulesUnsupported is returned by loaders that cannot load plugins or configs
	ErrModulesUnsupported = errors.New("plugins or config files are not supported")
)

// ResolutionError reports an @import identifier the loader does not know
type ResolutionError struct {
	ID   string
	Base string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnsupportedImport, e.ID)
}

// Unwrap lets errors.Is(err, ErrUnsupportedImport) match
func (e *ResolutionError) Unwrap() error {
	return ErrUnsupportedImport
}
