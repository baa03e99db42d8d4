// Package uuid wraps google/uuid so that ids can be bound from URI
// parameters with gin's ShouldBindUri.
package uuid

import (
	"fmt"

	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam implements gin's BindUnmarshaler. An empty
// parameter is the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return fmt.Errorf("invalid UUID %q: %w", p, err)
	}

	*u = UUID{parsed}
	return nil
}
