package layout

import "fmt"

// FragmentError reports an input fragment the pipeline cannot accept. It
// unwraps to model.ErrInvalidBBox, model.ErrNilFragment or
// model.ErrPageMismatch.
type FragmentError struct {
	Page  int // 0-based page index
	Index int // position of the fragment within the page
	Err   error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("page %d fragment %d: %v", e.Page, e.Index, e.Err)
}

func (e *FragmentError) Unwrap() error {
	return e.Err
}
