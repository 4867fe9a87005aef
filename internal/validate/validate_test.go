package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deckInput struct {
	Name  string `label:"name" validate:"required,max=10"`
	Level string `koanf:"level" validate:"oneof=low high"`
}

func TestStruct(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(deckInput{Name: "ok", Level: "low"}))

	err := v.Struct(deckInput{Level: "mid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is a required field")
	assert.Contains(t, err.Error(), "level must be one of [low high]")
}
