package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensions_Decode(t *testing.T) {
	input := `[
		{"name": "shared", "accessors": [{"type": "user", "accountId": "dXNlcjE", "name": "Bob", "permissions": ["read", "update"]}]},
		{"name": "acme-labels", "labels": ["a", "b"]},
		{"color": "red"}
	]`

	var exts Extensions
	require.NoError(t, json.Unmarshal([]byte(input), &exts))
	require.Len(t, exts, 3)

	shared, ok := exts[0].(*SharedExtension)
	require.True(t, ok)
	require.Len(t, shared.Accessors, 1)
	assert.Equal(t, "Bob", shared.Accessors[0].Name)
	assert.Equal(t, "user1", string(shared.Accessors[0].AccountID))

	acme, ok := exts[1].(*UnknownExtension)
	require.True(t, ok)
	assert.Equal(t, ExtensionName("acme-labels"), acme.ExtensionName())

	nameless, ok := exts[2].(*UnknownExtension)
	require.True(t, ok)
	assert.Equal(t, ExtensionName(""), nameless.ExtensionName())

	data, err := json.Marshal(exts)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))
}

func TestSharedExtension_Errors(t *testing.T) {
	t.Run("missing accessors", func(t *testing.T) {
		var exts Extensions
		err := json.Unmarshal([]byte(`[{"name": "shared"}]`), &exts)
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("accessor missing account id", func(t *testing.T) {
		var exts Extensions
		err := json.Unmarshal([]byte(`[{"name": "shared", "accessors": [{"type": "user", "name": "x", "permissions": []}]}]`), &exts)
		require.ErrorIs(t, err, ErrMissingField)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "extensions[0].accountId", fe.Field)
	})
}

func TestSharedExtension_EffectiveAccessors(t *testing.T) {
	input := `{"name": "shared", "accessors": [
		{"type": "user", "accountId": "YQ", "name": "keeps known", "permissions": ["read", "teleport", "readSecret"]},
		{"type": "group", "accountId": "Yg", "name": "only unknown", "permissions": ["teleport"]},
		{"type": "group", "accountId": "Yw", "name": "empty", "permissions": []},
		{"type": "robot", "accountId": "ZA", "name": "unknown type", "permissions": ["read"]}
	]}`

	var shared SharedExtension
	require.NoError(t, json.Unmarshal([]byte(input), &shared))
	require.Len(t, shared.Accessors, 4)

	effective := shared.EffectiveAccessors()
	require.Len(t, effective, 1)
	assert.Equal(t, "keeps known", effective[0].Name)
	assert.Equal(t, []SharingAccessorPermission{SharingPermissionRead, SharingPermissionReadSecret}, effective[0].Permissions)

	// the decoded value keeps everything for re-export
	assert.Len(t, shared.Accessors[0].Permissions, 3)
}

func TestSharedExtension_Encode(t *testing.T) {
	ext := &SharedExtension{}
	data, err := json.Marshal(ext)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "shared", "accessors": []}`, string(data))
}

// ---------------------------------------------------------------------------
// External extensions
// ---------------------------------------------------------------------------

type labelsExtension struct {
	Labels []string `json:"labels"`
}

func (*labelsExtension) ExtensionName() ExtensionName { return "acme-labels" }

func (l labelsExtension) MarshalJSON() ([]byte, error) {
	type alias labelsExtension
	return marshalTagged("name", "acme-labels", alias(l))
}

func labelsDecoder() ExtensionDecoder {
	return ExtensionDecoderFunc(func(name ExtensionName, raw json.RawMessage) (Extension, error) {
		if name != "acme-labels" {
			return nil, nil
		}
		var ext labelsExtension
		if err := json.Unmarshal(raw, &ext); err != nil {
			return nil, err
		}
		if len(ext.Labels) == 0 {
			return nil, errors.New("labels required")
		}
		return &ext, nil
	})
}

func TestExtensions_Resolve(t *testing.T) {
	exts := Extensions{
		&UnknownExtension{Name: "acme-labels", Raw: json.RawMessage(`{"name":"acme-labels","labels":["x"]}`)},
		&UnknownExtension{Name: "acme-labels", Raw: json.RawMessage(`{"name":"acme-labels","labels":[]}`)},
		&UnknownExtension{Name: "other", Raw: json.RawMessage(`{"name":"other"}`)},
		&SharedExtension{},
	}

	exts.resolve(labelsDecoder())

	labels, ok := exts[0].(*labelsExtension)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, labels.Labels)

	assert.IsType(t, &UnknownExtension{}, exts[1], "rejected payload stays unknown")
	assert.IsType(t, &UnknownExtension{}, exts[2], "unclaimed name stays unknown")
	assert.IsType(t, &SharedExtension{}, exts[3])
}
