package render

import (
	"encoding/json"
	"testing"

	"github.com/hay-kot/tasktidy/internal/core/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	doc := JSON(sample(), Options{})

	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, "1", doc.Nodes[0].Label)
	assert.Nil(t, doc.Nodes[0].Children)

	second := doc.Nodes[1]
	assert.Equal(t, task.StatusDone, second.Status)
	require.Len(t, second.Children, 3)
	assert.Equal(t, 1, second.Children[2].Depth)
	require.Len(t, second.Children[2].Children, 1)
	assert.Equal(t, "2-3-1", second.Children[2].Children[0].Label)
}

func TestJSON_MaxDepthDropsEmptyChildren(t *testing.T) {
	depth := 0
	doc := JSON(sample(), Options{MaxDepth: &depth})

	require.Len(t, doc.Nodes, 3)
	for _, n := range doc.Nodes {
		assert.Nil(t, n.Children)
	}
}

func TestJSON_Encoding(t *testing.T) {
	data, err := json.Marshal(JSON(sample()[:1], Options{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[{"depth":0,"status":"done","label":"1"}]}`, string(data))

	data, err = json.Marshal(JSON(nil, Options{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[]}`, string(data))
}

func TestValidateJSON(t *testing.T) {
	data, err := json.Marshal(JSON(sample(), Options{}))
	require.NoError(t, err)
	require.NoError(t, ValidateJSON(data))

	tests := []struct {
		name string
		data string
	}{
		{name: "missing nodes", data: `{}`},
		{name: "unknown status", data: `{"nodes":[{"depth":0,"status":"blocked","label":"x"}]}`},
		{name: "negative depth", data: `{"nodes":[{"depth":-1,"status":"new","label":"x"}]}`},
		{name: "empty children", data: `{"nodes":[{"depth":0,"status":"new","label":"x","children":[]}]}`},
		{name: "extra field", data: `{"nodes":[{"depth":0,"status":"new","label":"x","glyph":"📦"}]}`},
		{name: "not json", data: `nodes`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateJSON([]byte(tt.data)))
		})
	}
}

func TestSchema(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal(Schema(), &v))
	assert.Equal(t, "object", v["type"])
}
