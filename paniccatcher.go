package promise

import (
	"fmt"
	"runtime/debug"
)

// catch runs f and converts a panic inside f into an error: an error
// panic value is returned as is, any other value is wrapped in
// a [PanicError].
func catch(f func()) (err error) {
	var ok bool

	defer func() {
		if ok {
			return
		}
		v := recover()
		if v == nil {
			panic("promise: promise does not support runtime.Goexit()")
		}
		if e, isErr := v.(error); isErr {
			err = e
			return
		}
		err = &PanicError{Value: v, Stack: debug.Stack()}
	}()

	f()
	ok = true

	return nil
}

// A PanicError is the rejection error of a [Task] whose starter
// function or continuation factory panicked with a non-error value.
// Value holds the value passed to panic; Stack holds the stack trace
// captured at recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}
