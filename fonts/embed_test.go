package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, name := range []string{"gobold", "embed:gobold", "GoBold.ttf", "goregular"} {
		data, err := Load(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
	_, err := Load("embed:Inter-Regular")
	assert.Error(t, err)
}
