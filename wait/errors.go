package wait

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ConditionTimeoutError is returned when a condition did not become true in time
type ConditionTimeoutError struct {
	Description string
	Timeout     time.Duration
}

func (e *ConditionTimeoutError) Error() string {
	return fmt.Sprintf("%s in %s", e.Description, e.Timeout)
}

// IsTimeout returns true if the error is caused by a condition timeout
func IsTimeout(err error) bool {
	var timeoutErr *ConditionTimeoutError
	return errors.As(err, &timeoutErr)
}
