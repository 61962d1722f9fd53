package parserbasic

import (
	_ "embed"
	str "strconv"
	"strings"
	"time"
)

// Data holds a mixture of annotated fields.
type Data struct {
	Foo int
	//new("bar")
	Bar string
	Baz uint64 //new=42
	// Created is set by the caller.
	//new
	Created time.Time
	A, B    int //new
	hidden  []string
}

//defew
type Private struct {
	ID int //new
}

type (
	// Grouped is declared inside a group.
	//defew(Factory)
	Grouped struct {
		Name string //new
	}

	Other struct{ X int }
)

type Plain struct {
	Value int
}

type Empty struct{}

type OnlyBlank struct {
	_ int
}

type Number int

type Factory interface {
	New(name string) Grouped
}

var (
	_ = strings.TrimSpace
	_ = str.Itoa
)
