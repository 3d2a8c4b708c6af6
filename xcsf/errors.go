package xcsf

import "errors"

var (
	// ErrConfig reports a missing or malformed configuration entry.
	ErrConfig = errors.New("xcsf: invalid configuration")
	// ErrShape reports input/output arrays inconsistent with the declared
	// num_x_vars/num_y_vars. No engine state is mutated when it is returned.
	ErrShape = errors.New("xcsf: input dimensions do not match the model")

	// errNumeric marks a prediction update that produced a non-finite value
	// or a collapsed divisor. The engine skips the update and raises the
	// classifier's deletion vote; it never aborts a trial.
	errNumeric = errors.New("xcsf: numeric fault in prediction update")
)
