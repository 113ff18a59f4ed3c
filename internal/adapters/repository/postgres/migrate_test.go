package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigration(t *testing.T) {
	name, content, err := Migration("init_schema.up")
	require.NoError(t, err)
	assert.Equal(t, "000001_init_schema.up.sql", name)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS votes")

	name, content, err = Migration("init_schema.down")
	require.NoError(t, err)
	assert.Equal(t, "000001_init_schema.down.sql", name)
	assert.NotEmpty(t, content)

	_, _, err = Migration("does_not_exist")
	assert.Error(t, err)
}
