// Package events defines the wire envelope emitted by devtrail clients and
// the validation rules applied at the ingest boundary. Validation failures
// are *ValidationError values so the HTTP layer can answer 400 with detail
// and the consumer can terminate poison pills instead of redelivering them.
package events

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Event types accepted by the platform. Payload shapes are enforced for the
// session.* and git.* families (see payloads.go); the rest pass through.
const (
	TypeSessionStart   = "session.start"
	TypeSessionEnd     = "session.end"
	TypeSessionCompact = "session.compact"

	TypeGitCommit   = "git.commit"
	TypeGitPush     = "git.push"
	TypeGitCheckout = "git.checkout"
	TypeGitMerge    = "git.merge"

	TypeRemoteProvisionStart = "remote.provision.start"
	TypeRemoteProvisionReady = "remote.provision.ready"
	TypeRemoteProvisionError = "remote.provision.error"
	TypeRemoteTerminate      = "remote.terminate"

	TypeSystemDeviceRegister = "system.device.register"
	TypeSystemHooksInstalled = "system.hooks.installed"
	TypeSystemHeartbeat      = "system.heartbeat"
)

var knownTypes = map[string]struct{}{
	TypeSessionStart:         {},
	TypeSessionEnd:           {},
	TypeSessionCompact:       {},
	TypeGitCommit:            {},
	TypeGitPush:              {},
	TypeGitCheckout:          {},
	TypeGitMerge:             {},
	TypeRemoteProvisionStart: {},
	TypeRemoteProvisionReady: {},
	TypeRemoteProvisionError: {},
	TypeRemoteTerminate:      {},
	TypeSystemDeviceRegister: {},
	TypeSystemHooksInstalled: {},
	TypeSystemHeartbeat:      {},
}

// ulidRE is the Crockford Base32 ULID grammar (I, L, O, U excluded).
var ulidRE = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// CanonicalUnassociated is the sentinel workspace canonical ID used by
// clients running outside any git checkout.
const CanonicalUnassociated = "_unassociated"

// BlobRef points at an externalized payload in the object store.
type BlobRef struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Envelope is the wire shape of a single client event. Timestamp stays a
// string on the wire; Validate parses it and Time returns the parsed value.
type Envelope struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Timestamp   string                 `json:"timestamp"`
	DeviceID    string                 `json:"device_id"`
	WorkspaceID string                 `json:"workspace_id"`
	SessionID   *string                `json:"session_id"`
	Data        map[string]interface{} `json:"data"`
	BlobRefs    []BlobRef              `json:"blob_refs"`

	parsedTime time.Time
}

// ValidationError aggregates every problem found in one envelope.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid event: " + strings.Join(e.Problems, "; ")
}

// Decode unmarshals and validates a raw envelope. JSON syntax errors are
// folded into the same *ValidationError category as field-level problems.
func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("malformed JSON: %v", err)}}
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// Validate checks the envelope grammar and, for registered types, the
// payload shape. BlobRefs defaults to empty. Returns nil or *ValidationError.
func (e *Envelope) Validate() error {
	var problems []string

	if !ulidRE.MatchString(e.ID) {
		problems = append(problems, fmt.Sprintf("id %q is not a ULID", e.ID))
	}
	if _, ok := knownTypes[e.Type]; !ok {
		problems = append(problems, fmt.Sprintf("unknown event type %q", e.Type))
	}
	ts, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		problems = append(problems, fmt.Sprintf("timestamp %q is not ISO-8601", e.Timestamp))
	} else {
		e.parsedTime = ts
	}
	if e.DeviceID == "" {
		problems = append(problems, "device_id is required")
	}
	if e.WorkspaceID == "" {
		problems = append(problems, "workspace_id is required")
	}
	if e.SessionID != nil && *e.SessionID == "" {
		problems = append(problems, "session_id must be null or non-empty")
	}
	if e.Data == nil {
		e.Data = map[string]interface{}{}
	}
	if e.BlobRefs == nil {
		e.BlobRefs = []BlobRef{}
	}
	for i, ref := range e.BlobRefs {
		if ref.Key == "" {
			problems = append(problems, fmt.Sprintf("blob_refs[%d].key is required", i))
		}
		if ref.SizeBytes < 0 {
			problems = append(problems, fmt.Sprintf("blob_refs[%d].size_bytes must be >= 0", i))
		}
	}

	if validate, ok := payloadValidators[e.Type]; ok {
		problems = append(problems, validate(e.Data)...)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Time returns the parsed timestamp. Only meaningful after Validate.
func (e *Envelope) Time() time.Time { return e.parsedTime }

// StringField returns data[key] when it is a non-empty string.
func (e *Envelope) StringField(key string) (string, bool) {
	v, ok := e.Data[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// NumberField returns data[key] when it is a JSON number.
func (e *Envelope) NumberField(key string) (float64, bool) {
	v, ok := e.Data[key].(float64)
	return v, ok
}
