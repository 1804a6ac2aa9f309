package draft

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// NewObjectID returns an uppercase UUID, the id form CapCut uses for
// projects, tracks, segments and materials.
func NewObjectID() string {
	return strings.ToUpper(uuid.New().String())
}

// NewLocalID returns a numeric-looking id derived from a UUID, used for
// local material references. At most 19 digits.
func NewLocalID() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).String()
	if len(s) > 19 {
		s = s[:19]
	}
	return s
}
