// Package picker selects random dictionary entries.
package picker

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/tuidict/internal/dictionary"
)

// Picker draws uniform random indexes.
type Picker struct {
	rnd *rand.Rand
}

// New returns a Picker seeded with the current time.
func New() *Picker {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Picker with a fixed seed.
func NewSeeded(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Index returns an index in [0, n), or -1 when n <= 0.
func (p *Picker) Index(n int) int {
	if n <= 0 {
		return -1
	}
	return p.rnd.Intn(n)
}

// Pick selects one entry of dict uniformly.
func (p *Picker) Pick(dict *dictionary.Dictionary) (dictionary.Entry, bool) {
	return dict.At(p.Index(dict.Len()))
}
