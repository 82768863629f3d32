package async

import "errors"

var (
	ErrNilFuture = errors.New("async: await called on nil future")
	ErrPanic     = errors.New("async: function panicked")
)
