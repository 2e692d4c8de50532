package errs

import (
	"github.com/pkg/errors"
)

// Engine error kinds. Callers classify with errors.Is and translate to
// transport codes at the boundary; the engine itself never maps to HTTP.
var (
	ErrDataSourceUnavailable = errors.New("data source unavailable")
	ErrNotFound              = errors.New("not found")
	ErrInvalidRange          = errors.New("invalid date range")
	ErrInvalidArgument       = errors.New("invalid argument")
)

// DataSource wraps a store/network failure with its origin kind so that
// errors.Is(err, ErrDataSourceUnavailable) holds through the wrap chain.
func DataSource(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(wrapped{kind: ErrDataSourceUnavailable, cause: err}, msg)
}

// NotFound marks a missing user/entry reference.
func NotFound(msg string) error {
	return errors.Wrap(ErrNotFound, msg)
}

// InvalidRange marks a malformed or inverted date window.
func InvalidRange(msg string) error {
	return errors.Wrap(ErrInvalidRange, msg)
}

// InvalidArgument marks an out-of-domain filter or sort value.
func InvalidArgument(msg string) error {
	return errors.Wrap(ErrInvalidArgument, msg)
}

type wrapped struct {
	kind  error
	cause error
}

func (w wrapped) Error() string {
	return w.kind.Error() + ": " + w.cause.Error()
}

func (w wrapped) Is(target error) bool {
	return target == w.kind
}

func (w wrapped) Unwrap() error {
	return w.cause
}
