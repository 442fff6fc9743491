package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdate_AllowListFilters(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"first_name": "Jane",
		"vic_id":     999,
		"created_at": "2020-01-01",
	}
	uq, err := BuildUpdate("victims", "vic_id", 42, payload, []string{"first_name", "last_name"})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE victims SET first_name = ? WHERE vic_id = ?", uq.SQL)
	assert.Equal(t, []any{"Jane", 42}, uq.Args)
	assert.NotContains(t, uq.SQL, "vic_id = ?,")
	assert.NotContains(t, uq.SQL, "created_at")
}

func TestBuildUpdate_ParamOrderFollowsAllowList(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"b": 2, "a": 1, "c": 3}
	uq, err := BuildUpdate("t", "id", 7, payload, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t SET a = ?, b = ?, c = ? WHERE id = ?", uq.SQL)
	assert.Equal(t, []any{1, 2, 3, 7}, uq.Args)
}

func TestBuildUpdate_EmptyAfterFilter(t *testing.T) {
	t.Parallel()

	_, err := BuildUpdate("t", "id", 1, map[string]any{"evil": "x"}, []string{"name"})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	_, err = BuildUpdate("t", "id", 1, nil, []string{"name"})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestBuildUpdate_ValuesNeverInSQLText(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"O'Hara", "x; DROP TABLE users", "a--b", "' OR 1=1 --"} {
		uq, err := BuildUpdate("citizens", "cit_id", 5, map[string]any{"last_name": v}, []string{"last_name"})
		require.NoError(t, err)
		assert.NotContains(t, uq.SQL, v)
		assert.Equal(t, []any{v, 5}, uq.Args)
	}
}

func TestSearchQuery_FiltersAndTermCompose(t *testing.T) {
	t.Parallel()

	q := NewSearch("criminal_records", "*", "created_at DESC", 1, 10).
		AddCondition("crime_type", "Theft").
		AddSearchGroup([]string{"description", "status"}, "Armed")

	dataSQL, dataArgs := q.DataSQL()
	assert.Equal(t,
		"SELECT * FROM criminal_records WHERE crime_type = ? AND "+
			"(LOWER(description) LIKE ? OR LOWER(status) LIKE ?) "+
			"ORDER BY created_at DESC LIMIT ? OFFSET ?",
		dataSQL)
	assert.Equal(t, []any{"Theft", "%armed%", "%armed%", 10, 0}, dataArgs)

	countSQL, countArgs := q.CountSQL()
	assert.Equal(t,
		"SELECT COUNT(*) FROM criminal_records WHERE crime_type = ? AND "+
			"(LOWER(description) LIKE ? OR LOWER(status) LIKE ?)",
		countSQL)
	assert.Equal(t, []any{"Theft", "%armed%", "%armed%"}, countArgs)
}

func TestSearchQuery_UnconstrainedScan(t *testing.T) {
	t.Parallel()

	q := NewSearch("citizens", "*", "cit_id ASC", 3, 20).
		AddCondition("city", "").
		AddSearchGroup([]string{"first_name"}, "  ")

	dataSQL, args := q.DataSQL()
	assert.Equal(t, "SELECT * FROM citizens WHERE 1=1 ORDER BY cit_id ASC LIMIT ? OFFSET ?", dataSQL)
	assert.Equal(t, []any{20, 40}, args)
}

func TestSearchQuery_Clamping(t *testing.T) {
	t.Parallel()

	q := NewSearch("t", "*", "id", 0, 1000)
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, MaxLimit, q.Limit())

	q = NewSearch("t", "*", "id", -5, 0)
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, 1, q.Limit())
}

func TestSearchQuery_TermNeverInSQLText(t *testing.T) {
	t.Parallel()

	term := "'; DELETE FROM citizens; --"
	q := NewSearch("citizens", "*", "cit_id", 1, 10).
		AddSearchGroup([]string{"first_name", "last_name"}, term)
	dataSQL, args := q.DataSQL()
	assert.False(t, strings.Contains(dataSQL, "DELETE"))
	assert.Contains(t, args, "%"+strings.ToLower(term)+"%")
}
