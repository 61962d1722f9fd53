package scenarios

// Data has no required parameters.
type Data struct {
	A int
	//new("ABC")
	B string
	//new(ptr(42))
	C *int
}

type Left int

type Right int

// Pair embeds two unnamed fields.
type Pair struct {
	//new
	Left
	Right //new(Right(123))
}

type SomeInterface interface {
	New(a int) Service
}

//defew(SomeInterface)
type Service struct {
	a int //new
}

//defew
type limits struct {
	Max   int //new=10
	Min   int //new=-1
	Label string
	//new(strings.Repeat("*", Max))
	Mask string
}

//defew="integration"
type Fixture struct {
	Name string //new
}

func ptr[T any](v T) *T { return &v }
