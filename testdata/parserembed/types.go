package parserembed

import "sync"

type Base struct {
	ID int
}

type Box[K comparable, V any] struct {
	Base
	*sync.Mutex
	//new
	Key   K
	Items map[K]V
	_     int
}
