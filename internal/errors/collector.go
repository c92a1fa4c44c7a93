package errors

import (
	"errors"
	"sync"
)

// Collector gathers errors so that validation can report every problem
// instead of stopping at the first one.
type Collector struct {
	errors []error
	mutex  sync.RWMutex
}

// NewCollector creates a new error collector.
func NewCollector() *Collector {
	return &Collector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector. Nil errors are ignored.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = append(c.errors, err)
}

// Err joins the collected errors, or returns nil when there are none.
func (c *Collector) Err() error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if len(c.errors) == 0 {
		return nil
	}
	return errors.Join(c.errors...)
}
