package navigation

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/routega/island"
)

// ErrPathNotFound is matched by every PathNotFoundError
var ErrPathNotFound = errors.New("path not found")

// PathNotFoundError reports a pair of points with no walkable connection
type PathNotFoundError struct {
	From, To island.Point
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no path from %s to %s", e.From, e.To)
}

func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}
