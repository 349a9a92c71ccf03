package scenario

import (
	"fmt"
	"strings"
)

// Collector gathers validation problems so they can all be reported at once.
// A Collector is itself an error, and each collected error may be matched with [errors.Is] or [errors.As].
type Collector struct {
	errs []error
}

// Add adds a potentially nil error to the Collector.
func (c *Collector) Add(err error) *Collector {
	if err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}

// Addf creates an error with [fmt.Errorf], so the "%w" verb may be used.
func (c *Collector) Addf(format string, args ...any) *Collector {
	return c.Add(fmt.Errorf(format, args...))
}

// Result returns nil if nothing was collected, otherwise the Collector itself.
func (c *Collector) Result() error {
	if len(c.errs) > 0 {
		return c
	}
	return nil
}

func (c *Collector) Error() string {
	msgs := make([]string, len(c.errs))
	for i, err := range c.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (c *Collector) Unwrap() []error {
	return c.errs
}
