package stores

import "errors"

// ErrCorrupt indicates the persisted document could not be decoded. A
// corrupt store invalidates every derived computation, so callers are
// expected to treat this as fatal rather than recover locally.
var ErrCorrupt = errors.New("store document is corrupt")

// IsCorrupt reports whether err indicates a corrupt persisted document.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}
