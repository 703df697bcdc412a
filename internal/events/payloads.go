package events

import "fmt"

// payloadValidators enforces payload shapes for the session.* and git.*
// families. Types without an entry pass through envelope validation only.
var payloadValidators = map[string]func(data map[string]interface{}) []string{
	TypeSessionStart:   validateSessionStart,
	TypeSessionEnd:     validateSessionEnd,
	TypeSessionCompact: validateSessionCompact,
	TypeGitCommit:      validateGitCommit,
	TypeGitPush:        validateGitPush,
	TypeGitCheckout:    validateGitCheckout,
	TypeGitMerge:       validateGitMerge,
}

func requireString(data map[string]interface{}, key string) []string {
	v, ok := data[key]
	if !ok {
		return []string{fmt.Sprintf("data.%s is required", key)}
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return []string{fmt.Sprintf("data.%s must be a non-empty string", key)}
	}
	return nil
}

// optionalString accepts absent, null, or string values.
func optionalString(data map[string]interface{}, key string) []string {
	v, ok := data[key]
	if !ok || v == nil {
		return nil
	}
	if _, ok := v.(string); !ok {
		return []string{fmt.Sprintf("data.%s must be a string or null", key)}
	}
	return nil
}

func optionalNumber(data map[string]interface{}, key string) []string {
	v, ok := data[key]
	if !ok || v == nil {
		return nil
	}
	if _, ok := v.(float64); !ok {
		return []string{fmt.Sprintf("data.%s must be a number", key)}
	}
	return nil
}

func validateSessionStart(data map[string]interface{}) []string {
	var problems []string
	problems = append(problems, requireString(data, "cc_session_id")...)
	problems = append(problems, requireString(data, "cwd")...)
	problems = append(problems, optionalString(data, "git_branch")...)
	problems = append(problems, optionalString(data, "git_remote")...)
	problems = append(problems, optionalString(data, "cc_version")...)
	problems = append(problems, optionalString(data, "model")...)
	problems = append(problems, optionalString(data, "source")...)
	problems = append(problems, optionalString(data, "transcript_path")...)
	return problems
}

func validateSessionEnd(data map[string]interface{}) []string {
	var problems []string
	problems = append(problems, requireString(data, "cc_session_id")...)
	problems = append(problems, optionalString(data, "end_reason")...)
	problems = append(problems, optionalNumber(data, "duration_ms")...)
	return problems
}

func validateSessionCompact(data map[string]interface{}) []string {
	var problems []string
	problems = append(problems, requireString(data, "cc_session_id")...)
	v, ok := data["compact_sequence"]
	if !ok {
		return append(problems, "data.compact_sequence is required")
	}
	n, ok := v.(float64)
	if !ok || n < 0 {
		problems = append(problems, "data.compact_sequence must be a number >= 0")
	}
	return problems
}

func validateGitCommit(data map[string]interface{}) []string {
	var problems []string
	problems = append(problems, requireString(data, "branch")...)
	problems = append(problems, requireString(data, "commit_sha")...)
	problems = append(problems, optionalString(data, "message")...)
	problems = append(problems, optionalNumber(data, "insertions")...)
	problems = append(problems, optionalNumber(data, "deletions")...)
	problems = append(problems, optionalNumber(data, "files_changed")...)
	return problems
}

func validateGitPush(data map[string]interface{}) []string {
	var problems []string
	problems = append(problems, requireString(data, "branch")...)
	problems = append(problems, optionalString(data, "remote")...)
	problems = append(problems, optionalString(data, "commit_sha")...)
	return problems
}

// git.checkout carries to_branch for named branches or to_ref for a
// detached head. At least one must be present.
func validateGitCheckout(data map[string]interface{}) []string {
	var problems []string
	problems = append(problems, optionalString(data, "from_ref")...)
	problems = append(problems, optionalString(data, "to_branch")...)
	problems = append(problems, optionalString(data, "to_ref")...)
	toBranch, _ := data["to_branch"].(string)
	toRef, _ := data["to_ref"].(string)
	if toBranch == "" && toRef == "" {
		problems = append(problems, "data.to_branch or data.to_ref is required")
	}
	return problems
}

func validateGitMerge(data map[string]interface{}) []string {
	var problems []string
	problems = append(problems, requireString(data, "branch")...)
	problems = append(problems, optionalString(data, "from_branch")...)
	problems = append(problems, optionalString(data, "commit_sha")...)
	return problems
}
