package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validULID = "01HQZX3Y4K5M6N7P8Q9RSTVWXY"

func baseEnvelope() map[string]interface{} {
	return map[string]interface{}{
		"id":           validULID,
		"type":         "session.start",
		"timestamp":    "2025-01-01T00:00:00Z",
		"device_id":    "D1",
		"workspace_id": "github.com/o/r",
		"session_id":   nil,
		"data": map[string]interface{}{
			"cc_session_id": "S1",
			"cwd":           "/tmp",
			"git_branch":    "main",
		},
		"blob_refs": []interface{}{},
	}
}

func decode(t *testing.T, m map[string]interface{}) (*Envelope, error) {
	t.Helper()
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	return Decode(raw)
}

func TestDecode_Valid(t *testing.T) {
	env, err := decode(t, baseEnvelope())
	require.NoError(t, err)
	assert.Equal(t, validULID, env.ID)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), env.Time())
	assert.NotNil(t, env.BlobRefs)
}

func TestDecode_BadULID(t *testing.T) {
	m := baseEnvelope()
	m["id"] = "not-a-ulid"
	_, err := decode(t, m)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "ULID")
}

func TestDecode_ULIDExcludedAlphabet(t *testing.T) {
	// I, L, O, U are not in the Crockford alphabet.
	m := baseEnvelope()
	m["id"] = "01HQZX3Y4K5M6N7P8Q9RSTVWXI"
	_, err := decode(t, m)
	require.Error(t, err)
}

func TestDecode_UnknownType(t *testing.T) {
	m := baseEnvelope()
	m["type"] = "session.sneeze"
	_, err := decode(t, m)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestDecode_BadTimestamp(t *testing.T) {
	m := baseEnvelope()
	m["timestamp"] = "yesterday"
	_, err := decode(t, m)
	require.Error(t, err)
}

func TestDecode_MissingDevice(t *testing.T) {
	m := baseEnvelope()
	m["device_id"] = ""
	_, err := decode(t, m)
	require.Error(t, err)
}

func TestDecode_BlobRefsDefaulted(t *testing.T) {
	m := baseEnvelope()
	delete(m, "blob_refs")
	env, err := decode(t, m)
	require.NoError(t, err)
	assert.Equal(t, []BlobRef{}, env.BlobRefs)
}

func TestDecode_NegativeBlobSize(t *testing.T) {
	m := baseEnvelope()
	m["blob_refs"] = []interface{}{
		map[string]interface{}{"key": "k", "content_type": "text/plain", "size_bytes": -1},
	}
	_, err := decode(t, m)
	require.Error(t, err)
}

func TestDecode_UnregisteredTypePassesThrough(t *testing.T) {
	m := baseEnvelope()
	m["type"] = "system.heartbeat"
	m["data"] = map[string]interface{}{"anything": "goes"}
	_, err := decode(t, m)
	require.NoError(t, err)
}

func TestDecode_SessionStartMissingCCSessionID(t *testing.T) {
	m := baseEnvelope()
	m["data"] = map[string]interface{}{"cwd": "/tmp"}
	_, err := decode(t, m)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "cc_session_id")
}

func TestDecode_SessionEndShapes(t *testing.T) {
	m := baseEnvelope()
	m["type"] = "session.end"
	m["data"] = map[string]interface{}{
		"cc_session_id": "S1",
		"duration_ms":   float64(0),
		"end_reason":    "exit",
	}
	_, err := decode(t, m)
	require.NoError(t, err)

	m["data"] = map[string]interface{}{"cc_session_id": "S1", "duration_ms": "long"}
	_, err = decode(t, m)
	require.Error(t, err)
}

func TestDecode_CompactRequiresSequence(t *testing.T) {
	m := baseEnvelope()
	m["type"] = "session.compact"
	m["data"] = map[string]interface{}{"cc_session_id": "S1"}
	_, err := decode(t, m)
	require.Error(t, err)

	m["data"] = map[string]interface{}{"cc_session_id": "S1", "compact_sequence": float64(2)}
	_, err = decode(t, m)
	require.NoError(t, err)
}

func TestDecode_CheckoutDetachedHead(t *testing.T) {
	m := baseEnvelope()
	m["type"] = "git.checkout"
	m["data"] = map[string]interface{}{"to_branch": nil, "to_ref": "abc123"}
	_, err := decode(t, m)
	require.NoError(t, err)

	m["data"] = map[string]interface{}{"from_ref": "main"}
	_, err = decode(t, m)
	require.Error(t, err)
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{invalid`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}
