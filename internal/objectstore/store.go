// Package objectstore holds raw transcripts and oversized tool results in an
// S3-compatible bucket. Postgres keeps only keys into this store, never blob
// bodies.
package objectstore

import "context"

// Store is the blob interface the transcript pipeline depends on.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// TranscriptKey is the canonical location of a session's raw transcript:
// transcripts/{workspace_canonical_id}/{session_id}/raw.jsonl
func TranscriptKey(canonicalID, sessionID string) string {
	return "transcripts/" + canonicalID + "/" + sessionID + "/raw.jsonl"
}

// ArtifactKey is the location of an externalized oversized tool result.
func ArtifactKey(sessionID, artifactID string) string {
	return "artifacts/" + sessionID + "/" + artifactID + ".txt"
}
