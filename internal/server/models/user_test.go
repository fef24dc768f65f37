package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserUpdate_Empty(t *testing.T) {
	name := "Ada"
	assert.True(t, UserUpdate{}.Empty())
	assert.False(t, UserUpdate{Name: &name}.Empty())
}
