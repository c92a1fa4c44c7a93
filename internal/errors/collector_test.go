package errors

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	assert.NoError(t, c.Err())

	first := NewValidationError(CodeEmptyTitle, "title is empty")
	second := errors.New("second")
	c.Add(first)
	c.Add(nil)
	c.Add(second)

	joined := c.Err()
	require.Error(t, joined)
	assert.Len(t, unjoin(t, joined), 2)
	assert.ErrorIs(t, joined, second)
	assert.True(t, IsValidationError(joined))
}

func TestCollectorConcurrentAdd(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(errors.New("x"))
		}()
	}
	wg.Wait()
	assert.Len(t, unjoin(t, c.Err()), 50)
}

func unjoin(t *testing.T, err error) []error {
	t.Helper()
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected a joined error")
	return joined.Unwrap()
}
