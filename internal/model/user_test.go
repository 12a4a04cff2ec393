package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		full string
		want string
	}{
		{name: "two tokens", full: "Ada Lovelace", want: "Ada"},
		{name: "single token", full: "Ada", want: "Ada"},
		{name: "surrounding whitespace", full: "  Grace Hopper ", want: "Grace"},
		{name: "empty", full: "", want: ""},
		{name: "only whitespace", full: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Name: tt.full}
			assert.Equal(t, tt.want, u.FirstName())
		})
	}
}

func TestUserJSONHidesPassword(t *testing.T) {
	u := User{Name: "Ada", Email: "ada@example.com", Password: "secret1"}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret1")
	assert.NotContains(t, string(b), "password")
}
