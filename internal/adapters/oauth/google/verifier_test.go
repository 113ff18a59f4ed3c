package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadFromClaims(t *testing.T) {
	t.Run("maps subject email and name", func(t *testing.T) {
		p, err := payloadFromClaims("1234", map[string]interface{}{"email": "a@example.com", "name": "A"})
		require.NoError(t, err)
		assert.Equal(t, "1234", p.Subject)
		assert.Equal(t, "a@example.com", p.Email)
		assert.Equal(t, "A", p.Name)
	})

	t.Run("name is optional", func(t *testing.T) {
		p, err := payloadFromClaims("1234", map[string]interface{}{"email": "a@example.com"})
		require.NoError(t, err)
		assert.Empty(t, p.Name)
	})

	t.Run("requires subject and email", func(t *testing.T) {
		_, err := payloadFromClaims("", map[string]interface{}{"email": "a@example.com"})
		assert.Error(t, err)

		_, err = payloadFromClaims("1234", map[string]interface{}{})
		assert.Error(t, err)
	})
}
