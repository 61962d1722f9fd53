package parserinvalid

//defew
type Number int
