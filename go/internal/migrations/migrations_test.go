package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesAreOrdered(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"sql/0001_roster.sql", "sql/0002_outbox.sql"}, names)
}

func TestRosterSchemaCarriesInvariants(t *testing.T) {
	body, err := files.ReadFile("sql/0001_roster.sql")
	require.NoError(t, err)
	schema := string(body)

	assert.True(t, strings.Contains(schema, "ON DELETE CASCADE"))
	assert.True(t, strings.Contains(schema, "batting_order BETWEEN 1 AND 11"))
	assert.True(t, strings.Contains(schema, "DEFERRABLE INITIALLY DEFERRED"))
	assert.True(t, strings.Contains(schema, "WHERE is_captain"))
}
