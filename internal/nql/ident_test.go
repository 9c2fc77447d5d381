package nql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("TAG"))
	assert.True(t, IsReserved("yield"))
	assert.False(t, IsReserved("Place"))
}

func TestIsIdentifierSyntax(t *testing.T) {
	assert.True(t, IsIdentifierSyntax("user_name"))
	assert.True(t, IsIdentifierSyntax("_x9"))
	assert.False(t, IsIdentifierSyntax(""))
	assert.False(t, IsIdentifierSyntax("9x"))
	assert.False(t, IsIdentifierSyntax("a.b"))
}

func TestIndexName(t *testing.T) {
	assert.Equal(t, "Place_name_idx", IndexName("Place", "name"))
}
