package shadow

import "time"

// Clock names a parameter after an imported package.
type Clock struct {
	time time.Time //new
	tick time.Duration
	//new(tick * 2)
	span time.Duration
}
