package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BasicTranscript(t *testing.T) {
	transcript := strings.Join([]string{
		`{"type":"user","uuid":"u1","timestamp":"2026-03-14T10:00:00Z","message":{"role":"user","content":"add retry logic"}}`,
		``,
		`{"type":"assistant","uuid":"a1","parentUuid":"u1","timestamp":"2026-03-14T10:00:05Z","message":{"role":"assistant","model":"claude-sonnet","content":[{"type":"text","text":"On it."},{"type":"tool_use","name":"Edit","input":{"file":"main.go"}}],"usage":{"input_tokens":120,"output_tokens":40,"cache_read_input_tokens":1000,"cache_creation_input_tokens":0}}}`,
		`{"type":"user","uuid":"u2","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu1","content":"edited ok","is_error":false}]}}`,
		`{"type":"summary","summary":"session about retries"}`,
	}, "\n")

	res, err := Parse(strings.NewReader(transcript), 0)
	require.NoError(t, err)
	require.Len(t, res.Messages, 3, "summary lines are not messages")

	first := res.Messages[0]
	assert.Equal(t, 1, first.LineNumber)
	assert.Equal(t, 0, first.Ordinal)
	assert.Equal(t, "user", first.Role)
	require.Len(t, first.Blocks, 1)
	assert.Equal(t, "text", first.Blocks[0].Type)
	assert.Equal(t, "add retry logic", first.Blocks[0].Text)

	second := res.Messages[1]
	assert.Equal(t, 3, second.LineNumber, "blank lines keep their line numbers")
	assert.Equal(t, 1, second.Ordinal)
	assert.Equal(t, "claude-sonnet", second.Model)
	assert.True(t, second.HasUsage)
	assert.EqualValues(t, 120, second.TokensIn)
	assert.EqualValues(t, 1000, second.TokensCacheRead)
	require.Len(t, second.Blocks, 2)
	assert.Equal(t, "tool_use", second.Blocks[1].Type)
	assert.Equal(t, "Edit", second.Blocks[1].ToolName)

	third := res.Messages[2]
	require.Len(t, third.Blocks, 1)
	assert.Equal(t, "tool_result", third.Blocks[0].Type)
	assert.Equal(t, "tu1", third.Blocks[0].ToolResultID)
	assert.Equal(t, "edited ok", third.Blocks[0].Text)
}

func TestParse_CompactBoundaryTagsEarlierMessages(t *testing.T) {
	transcript := strings.Join([]string{
		`{"type":"user","message":{"role":"user","content":"before compact"}}`,
		`{"type":"system","isCompactSummary":true}`,
		`{"type":"user","message":{"role":"user","content":"after compact"}}`,
	}, "\n")

	res, err := Parse(strings.NewReader(transcript), 0)
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)

	assert.Equal(t, 0, res.Messages[0].CompactSequence)
	assert.True(t, res.Messages[0].IsCompacted)
	assert.Equal(t, 1, res.Messages[1].CompactSequence)
	assert.False(t, res.Messages[1].IsCompacted)
	assert.Equal(t, 1, res.FinalCompactSequence)
}

func TestParse_CompactSequenceRegressionRefused(t *testing.T) {
	transcript := strings.Join([]string{
		`{"type":"user","compact_sequence":2,"message":{"role":"user","content":"at two"}}`,
		`{"type":"user","compact_sequence":1,"message":{"role":"user","content":"stale"}}`,
	}, "\n")

	res, err := Parse(strings.NewReader(transcript), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Regressions)
	assert.Equal(t, 2, res.Messages[1].CompactSequence, "regression keeps the running value")
	assert.Equal(t, 2, res.FinalCompactSequence)
}

func TestParse_StartSeqSeedsFromSession(t *testing.T) {
	transcript := `{"type":"user","message":{"role":"user","content":"hello"}}`

	res, err := Parse(strings.NewReader(transcript), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Messages[0].CompactSequence)
	assert.Equal(t, 3, res.FinalCompactSequence)
}

func TestParse_MalformedLineFails(t *testing.T) {
	transcript := strings.Join([]string{
		`{"type":"user","message":{"role":"user","content":"fine"}}`,
		`{not json`,
	}, "\n")

	_, err := Parse(strings.NewReader(transcript), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_ToolResultBlockList(t *testing.T) {
	transcript := `{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu1","content":[{"type":"text","text":"part one "},{"type":"text","text":"part two"}],"is_error":true}]}}`

	res, err := Parse(strings.NewReader(transcript), 0)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	block := res.Messages[0].Blocks[0]
	assert.Equal(t, "part one part two", block.Text)
	assert.True(t, block.IsError)
}

func TestParse_EmptyTranscript(t *testing.T) {
	res, err := Parse(strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Empty(t, res.Messages)
}
