package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, Check(hash, "s3cret!"))
	assert.False(t, Check(hash, "wrong"))
	assert.False(t, Check("plaintext", "plaintext"))
}
