package attach

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a configuration the engine cannot work with.
	ErrInvalidConfig = errors.New("invalid attachment configuration")
	// ErrOutsideTrim indicates a remapped request outside of the trim region.
	ErrOutsideTrim = errors.New("attachment outside of trim region")
)

// RequestError reports the failure of a single request. Results of other
// requests of the same evaluation are not affected.
type RequestError struct {
	Index int
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("attachment %d: %v", e.Index, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// FailedIndices collects the request indices of all RequestErrors in err.
func FailedIndices(err error) []int {
	var indices []int
	var collect func(error)
	collect = func(err error) {
		var re *RequestError
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				collect(e)
			}
		} else if errors.As(err, &re) {
			indices = append(indices, re.Index)
		}
	}
	if err != nil {
		collect(err)
	}
	return indices
}
