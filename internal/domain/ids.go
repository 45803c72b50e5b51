package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID produces a unique entity id with a short type prefix, e.g. "m_..."
// for menu items. The prefix keeps logs and snapshots readable.
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

// Prefixes used across the aggregate.
const (
	IDMenuItem  = "m"
	IDTable     = "t"
	IDOrder     = "o"
	IDOrderItem = "oi"
)
