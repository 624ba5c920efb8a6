package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal_AbsentNullValue(t *testing.T) {
	type payload struct {
		Notes  Optional[string] `json:"notes"`
		Tenant Optional[string] `json:"tenant"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null, "tenant": "Acme"}`), &p))

	// tenant carries a value
	assert.True(t, p.Tenant.Set)
	assert.True(t, p.Tenant.Valid)
	assert.Equal(t, "Acme", p.Tenant.Value)

	// notes was explicitly nulled
	assert.True(t, p.Notes.Set)
	assert.False(t, p.Notes.Valid)

	// an absent field stays fully unset
	var q payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &q))
	assert.False(t, q.Notes.Set)
	assert.False(t, q.Tenant.Set)
}

func TestOptionalUnmarshal_NestedSettings(t *testing.T) {
	var patch ContainerUpdate
	body := `{"settings": {"shadow_service_enabled": true}}`
	require.NoError(t, json.Unmarshal([]byte(body), &patch))

	require.True(t, patch.Settings.Set)
	require.True(t, patch.Settings.Valid)
	assert.True(t, patch.Settings.Value.ShadowServiceEnabled.Set)
	assert.True(t, patch.Settings.Value.ShadowServiceEnabled.Value)
	assert.False(t, patch.Settings.Value.Ecosystem.Set)

	var withEcosystem ContainerUpdate
	body = `{"settings": {"ecosystem": {"provider": "farmos"}}}`
	require.NoError(t, json.Unmarshal([]byte(body), &withEcosystem))
	assert.True(t, withEcosystem.Settings.Value.Ecosystem.Set)
	assert.True(t, withEcosystem.Settings.Value.Ecosystem.Valid)
	assert.Equal(t, "farmos", withEcosystem.Settings.Value.Ecosystem.Value["provider"])
}

func TestOptionalUnmarshal_SeedTypesReplacement(t *testing.T) {
	var patch ContainerUpdate
	body := `{"seed_types": [{"id": "s1", "name": "Basil"}, {"id": "s2", "name": "Rocket", "variety": "Wild"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &patch))

	require.True(t, patch.SeedTypes.Set)
	require.True(t, patch.SeedTypes.Valid)
	require.Len(t, patch.SeedTypes.Value, 2)
	assert.Equal(t, "Basil", patch.SeedTypes.Value[0].Name)
	require.NotNil(t, patch.SeedTypes.Value[1].Variety)
	assert.Equal(t, "Wild", *patch.SeedTypes.Value[1].Variety)
}

func TestOptionalMarshal(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"set":   Some("value"),
		"null":  Null[string](),
		"unset": Optional[string]{},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"set": "value", "null": null, "unset": null}`, string(data))
}
