package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchLessOrdersNumerically(t *testing.T) {
	assert.True(t, patchLess("14.3", "14.4"))
	assert.True(t, patchLess("14.9", "14.10"), "14.10 comes after 14.9, not before")
	assert.True(t, patchLess("13.24", "14.1"))
	assert.False(t, patchLess("14.4", "14.3"))
	assert.False(t, patchLess("14.3", "14.3"))
	assert.True(t, patchLess("14", "14.1"), "shorter prefix sorts first")
}

func TestAdvisoryLockKeyDistinguishesKeys(t *testing.T) {
	a := advisoryLockKey("Ahri", "14.3")
	assert.Equal(t, a, advisoryLockKey("Ahri", "14.3"))
	assert.NotEqual(t, a, advisoryLockKey("Ahri", "14.4"))
	assert.NotEqual(t, a, advisoryLockKey("Zoe", "14.3"))
	assert.NotEqual(t, advisoryLockKey("ab", "c"), advisoryLockKey("a", "bc"),
		"separator keeps concatenation ambiguity out of the hash")
}
