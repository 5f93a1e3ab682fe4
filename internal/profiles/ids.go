// internal/profiles/ids.go
package profiles

import (
	"fmt"

	"ghotok-workers/internal/matching"
)

const (
	idLow  = 10000
	idSpan = 90000
)

// IDGenerator produces human-facing profile ids such as GB-48213.
type IDGenerator struct {
	prefix string
	rnd    matching.RandSource
}

func NewIDGenerator(prefix string, rnd matching.RandSource) *IDGenerator {
	if prefix == "" {
		prefix = "GB"
	}
	return &IDGenerator{prefix: prefix, rnd: rnd}
}

func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%s-%05d", g.prefix, idLow+g.rnd.Intn(idSpan))
}
