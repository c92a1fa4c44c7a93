package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOrder(t *testing.T) {
	list := Default()

	require.Len(t, list, 3)
	assert.Equal(t, []string{"Simplicity", "Efficiency", "Versatility"}, list.Titles())
	for _, d := range list {
		assert.Equal(t, DefaultIcon, d.Icon)
		assert.NotEmpty(t, d.Description)
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	first := Default()
	first[0].Title = "Changed"

	assert.Equal(t, "Simplicity", Default()[0].Title)
}

func TestCloneNil(t *testing.T) {
	var l List
	clone := l.Clone()

	assert.NotNil(t, clone)
	assert.Empty(t, clone)
}
