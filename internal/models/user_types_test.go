package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPassword_SetMatches(t *testing.T) {
	p := Password{Cost: bcrypt.MinCost}
	require.NoError(t, p.Set("abcdef"))

	assert.NotEqual(t, "abcdef", p.Hash)
	cost, err := bcrypt.Cost([]byte(p.Hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	ok, err := p.Matches("abcdef")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("abcdeg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = (&Password{Hash: "not-a-hash"}).Matches("abcdef")
	assert.Error(t, err)
}

func TestUser_PublicOmitsPassword(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace", Email: "a@b.com", PasswordHash: "$2a$04$hash"}

	data, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstName":"Ada","lastName":"Lovelace","email":"a@b.com"}`, string(data))
}
