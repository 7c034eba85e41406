package call

import "errors"

// Call is one step of a start-up or shutdown sequence
type Call func() error

// Perform runs calls in order and stops on the first error
func Perform(calls ...Call) error {
	for _, call := range calls {
		if err := call(); err != nil {
			return err
		}
	}
	return nil
}

// PerformAll runs every call, even after a failure, and joins the errors
func PerformAll(calls ...Call) error {
	var errs []error
	for _, call := range calls {
		if err := call(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithArg binds one argument to a call
func WithArg[Arg any](call func(Arg) error, arg Arg) Call {
	return func() error {
		return call(arg)
	}
}

// Skip returns a Call that does nothing when cond is false
func Skip(cond bool, call Call) Call {
	if !cond {
		return func() error { return nil }
	}
	return call
}
