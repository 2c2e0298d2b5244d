package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Query
	}{
		{
			name: "comma separated kinds",
			text: "SELECT * FROM Pod,Deployment",
			expected: Query{
				Select: []string{"*"},
				From:   []string{"Pod", "Deployment"},
			},
		},
		{
			name: "limit takes the final token",
			text: "SELECT * FROM Pod WHERE a b LIMIT 5",
			expected: Query{
				Select: []string{"*"},
				From:   []string{"Pod"},
				Where:  []string{"a", "b"},
				Limit:  []string{"5"},
			},
		},
		{
			name: "limit and offset both take the final token",
			text: "SELECT * FROM Pod LIMIT 5 OFFSET 10",
			expected: Query{
				Select: []string{"*"},
				From:   []string{"Pod"},
				Limit:  []string{"10"},
				Offset: []string{"10"},
			},
		},
		{
			name: "offset keeps the active clause",
			text: "SELECT * FROM Pod OFFSET 10",
			expected: Query{
				Select: []string{"*"},
				From:   []string{"Pod", "10"},
				Offset: []string{"10"},
			},
		},
		{
			name: "by is data",
			text: "SELECT * FROM Pod GROUP BY kind ORDER BY name",
			expected: Query{
				Select:  []string{"*"},
				From:    []string{"Pod"},
				GroupBy: []string{"BY", "kind"},
				OrderBy: []string{"BY", "name"},
			},
		},
		{
			name: "keywords are case insensitive",
			text: "select metadata.name, spec.replicas from apps/v1:Deployment where x",
			expected: Query{
				Select: []string{"metadata.name", "spec.replicas"},
				From:   []string{"apps/v1:Deployment"},
				Where:  []string{"x"},
			},
		},
		{
			name:     "tokens before select are dropped",
			text:     "FROM Pod WHERE a SELECT name",
			expected: Query{Select: []string{"name"}},
		},
		{
			name: "all clauses",
			text: "SELECT kind FROM * WHERE a = b GROUP BY kind HAVING c ORDER BY name",
			expected: Query{
				Select:  []string{"kind"},
				From:    []string{"*"},
				Where:   []string{"a", "=", "b"},
				GroupBy: []string{"BY", "kind"},
				Having:  []string{"c"},
				OrderBy: []string{"BY", "name"},
			},
		},
		{
			name: "repeated group is data",
			text: "SELECT * FROM Pod GROUP BY a GROUP b",
			expected: Query{
				Select:  []string{"*"},
				From:    []string{"Pod"},
				GroupBy: []string{"BY", "a", "GROUP", "b"},
			},
		},
		{
			name: "empty tokens are dropped",
			text: "SELECT  *  FROM Pod,,Service,",
			expected: Query{
				Select: []string{"*"},
				From:   []string{"Pod", "Service"},
			},
		},
		{
			name: "no select",
			text: "Pod Deployment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.text))
		})
	}
}

func TestQuery_String(t *testing.T) {
	q := Parse("select * from Pod,Deployment where a b order by name limit 5")
	assert.Equal(t, "SELECT * FROM Pod, Deployment WHERE a b ORDER by name LIMIT 5", q.String())

	assert.Equal(t, q, Parse(q.String()))

	q = Parse("SELECT kind FROM * GROUP BY kind ORDER BY name")
	assert.Equal(t, "SELECT kind FROM * GROUP BY kind ORDER BY name", q.String())
	assert.Equal(t, q, Parse(q.String()))
}

func TestQuery_SelectsAll(t *testing.T) {
	assert.True(t, Parse("SELECT * FROM Pod").SelectsAll())
	assert.True(t, Parse("SELECT FROM Pod").SelectsAll())
	assert.False(t, Parse("SELECT metadata.name FROM Pod").SelectsAll())
}

func TestQuery_JSON(t *testing.T) {
	data, err := json.Marshal(Parse("SELECT * FROM Pod GROUP BY kind"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "group_by")
	assert.Contains(t, decoded, "order_by")
	assert.Equal(t, []interface{}{"BY", "kind"}, decoded["group_by"])
}
