// ABOUTME: Identifier generation for records created at runtime
// ABOUTME: Seed records use readable literal IDs; new ones get a short UUID suffix
package store

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns an ID like "CL-1f3a9c2e" for a record created in a local copy.
func NewID(prefix string) string {
	return prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}
