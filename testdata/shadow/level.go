package shadow

type Level int

// Limits names a field after its own type.
type Limits struct {
	Level Level
	Max   Level //new=3
	//new(Level + Max)
	Sum Level
}

// Vec claims the name the constructed value would otherwise take.
type Vec struct {
	v int //new
	//new(v * 2)
	w int
}
