// pkg/registry/registry_test.go
package registry

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddFindAndEnabled(t *testing.T) {
	reg := New("1.0.0")
	reg.Add(Activity{ID: "a", TaskType: "web-search", Enabled: true})
	reg.Add(Activity{ID: "b", TaskType: "generate-answer", Enabled: false})
	reg.Add(Activity{ID: "a2", TaskType: "web-search", Enabled: true})

	require.Len(t, reg.Activities, 2)

	found, ok := reg.Find("web-search")
	require.True(t, ok)
	assert.Equal(t, "a2", found.ID)

	_, ok = reg.Find("missing")
	assert.False(t, ok)

	enabled := reg.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "web-search", enabled[0].TaskType)
}

func TestRegistry_WriteJSON(t *testing.T) {
	reg := New("2.0.0")
	reg.Add(Activity{ID: "x", TaskType: "answer-question", InputVariables: []string{"question"}})

	var buf bytes.Buffer
	require.NoError(t, reg.WriteJSON(&buf))

	var decoded ActivityRegistry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2.0.0", decoded.Version)
	assert.NotEmpty(t, decoded.LastUpdated)
	require.Len(t, decoded.Activities, 1)
	assert.Equal(t, []string{"question"}, decoded.Activities[0].InputVariables)
}
