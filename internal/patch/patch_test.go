package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  *string       `json:"name"`
	Color Field[string] `json:"color"`
	Order Field[int]    `json:"order"`
}

func TestField_KeyAbsent(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

	assert.False(t, p.Color.Present)
	assert.False(t, p.Color.Null)

	updates := map[string]any{}
	p.Color.Apply(updates, "color")
	assert.Empty(t, updates, "absent field must not touch the changeset")
}

func TestField_ExplicitNull(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"color": null}`), &p))

	assert.True(t, p.Color.Present)
	assert.True(t, p.Color.Null)

	updates := map[string]any{}
	p.Color.Apply(updates, "color")
	require.Contains(t, updates, "color")
	assert.Nil(t, updates["color"])
}

func TestField_Assigned(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"color": "#ff0000", "order": 3}`), &p))

	require.True(t, p.Color.Present)
	require.False(t, p.Color.Null)
	assert.Equal(t, "#ff0000", p.Color.Value)

	updates := map[string]any{}
	p.Color.Apply(updates, "color")
	p.Order.Apply(updates, "order")
	assert.Equal(t, "#ff0000", updates["color"])
	assert.Equal(t, 3, updates["order"])
}

func TestField_ZeroValueIsAssign(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"order": 0}`), &p))

	assert.True(t, p.Order.Present)
	assert.False(t, p.Order.Null)
	assert.Equal(t, 0, p.Order.Value)
}

func TestField_Ptr(t *testing.T) {
	assert.Nil(t, Field[string]{}.Ptr())
	assert.Nil(t, Clear[string]().Ptr())

	ptr := Set("x").Ptr()
	require.NotNil(t, ptr)
	assert.Equal(t, "x", *ptr)
}

func TestField_MarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(Set(42))
	require.NoError(t, err)
	assert.JSONEq(t, `42`, string(data))

	data, err = json.Marshal(Clear[int]())
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(data))
}
