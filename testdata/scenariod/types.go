package scenariod

type Fine struct {
	X int //new
}

type Broken struct {
	A int
	//new
	//new(1)
	B int
}
