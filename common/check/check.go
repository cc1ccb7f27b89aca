package check

import "fmt"

// PanicIfErr panics on non-nil error.
// Use it only where an error means a bug in the program, not bad input.
func PanicIfErr(err error) {
	if err != nil {
		panic(err)
	}
}

// PanicIfNot panics on false.
func PanicIfNot(flag bool) {
	if !flag {
		panic("requirement not met")
	}
}

func PanicIfNotf(flag bool, format string, args ...any) {
	if !flag {
		panic(fmt.Sprintf(format, args...))
	}
}
