package scenarioconflict

//new
type Misplaced struct {
	A int
}

type Field struct {
	//defew(Factory)
	A int
}
