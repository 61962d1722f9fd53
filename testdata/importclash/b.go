package importclash

import (
	"crypto/rand"
	"io"
)

var _ io.Reader = rand.Reader

type B struct {
	//new(rand.Reader)
	R io.Reader
}
