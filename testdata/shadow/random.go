package shadow

import (
	crand "crypto/rand"
	"io"
	"math/rand"
)

var _ io.Reader = crand.Reader

// Dice draws from math/rand.
type Dice struct {
	//new(rand.Intn(6) + 1)
	Face int
	src  rand.Source
}

// Seed reads from crypto/rand under another name.
type Seed struct {
	//new(crand.Reader)
	Source io.Reader
}
