package sqlutil

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTextRoundTrip(t *testing.T) {
	assert.False(t, ToPgText(nil).Valid)
	assert.Nil(t, FromPgText(ToPgText(nil)))

	city := "Lahore"
	got := FromPgText(ToPgText(&city))
	if assert.NotNil(t, got) {
		assert.Equal(t, "Lahore", *got)
	}
}

func TestInt4RoundTrip(t *testing.T) {
	assert.Nil(t, FromPgInt4(ToPgInt4(nil)))

	order := 7
	got := FromPgInt4(ToPgInt4(&order))
	if assert.NotNil(t, got) {
		assert.Equal(t, 7, *got)
	}
}

func TestTrimPtr(t *testing.T) {
	blank := "   "
	padded := "  Karachi "

	assert.Nil(t, TrimPtr(nil))
	assert.Nil(t, TrimPtr(&blank))
	assert.Equal(t, "Karachi", *TrimPtr(&padded))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%kings%", LikePattern("kings"))
	assert.Equal(t, `%100\%\_x\\%`, LikePattern(`100%_x\`))
}

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert team: %w", &pgconn.PgError{Code: "23505", ConstraintName: "teams_name_key"})

	name, ok := UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "teams_name_key", name)

	_, ok = ForeignKeyViolation(err)
	assert.False(t, ok)

	_, ok = UniqueViolation(fmt.Errorf("boom"))
	assert.False(t, ok)
}
