package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("date", "time_slot").
		From("availability_slots").
		Where(squirrel.Eq{"date": "2024-06-10", "time_slot": "morning"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT date, time_slot FROM availability_slots WHERE date = $1 AND time_slot = $2", query)
	assert.Equal(t, []interface{}{"2024-06-10", "morning"}, args)
}
