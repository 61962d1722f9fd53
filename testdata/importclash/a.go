package importclash

import "math/rand"

type A struct {
	//new(rand.Intn(3))
	N int
	r *rand.Rand
}
