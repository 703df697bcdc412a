package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Message is one parsed transcript message. Ordinal is assigned in parse
// order and is the idempotency key within a session; LineNumber preserves
// the position in the raw file for debugging.
type Message struct {
	LineNumber int
	Ordinal    int
	Role       string
	Model      string

	TokensIn         int64
	TokensOut        int64
	TokensCacheRead  int64
	TokensCacheWrite int64
	HasUsage         bool

	CostUSD float64
	HasCost bool

	CompactSequence int
	IsCompacted     bool

	Timestamp time.Time
	Metadata  map[string]interface{}
	Blocks    []Block
}

// Block is one content block inside a message. For oversized tool results
// the pipeline moves Text into the object store and fills ResultS3Key before
// persisting.
type Block struct {
	Order        int
	Type         string
	Text         string
	ToolName     string
	ToolInput    json.RawMessage
	ToolResultID string
	IsError      bool
	ResultS3Key  string
}

// ParseResult is the outcome of parsing one transcript.
type ParseResult struct {
	Messages []Message
	// FinalCompactSequence is the highest sequence observed, never below the
	// starting value.
	FinalCompactSequence int
	// Regressions counts lines that tried to lower the compact sequence;
	// those are refused silently and kept at the running value.
	Regressions int
}

// transcriptLine is the wire shape of one JSONL line in a Claude Code
// transcript.
type transcriptLine struct {
	Type             string   `json:"type"`
	UUID             string   `json:"uuid"`
	ParentUUID       string   `json:"parentUuid"`
	Timestamp        string   `json:"timestamp"`
	IsCompactSummary bool     `json:"isCompactSummary"`
	CompactSequence  *int     `json:"compact_sequence"`
	CostUSD          *float64 `json:"costUSD"`
	Message          struct {
		Role    string          `json:"role"`
		Model   string          `json:"model"`
		Content json.RawMessage `json:"content"`
		Usage   *lineUsage      `json:"usage"`
	} `json:"message"`
}

type lineUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
}

type rawBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	Content   json.RawMessage `json:"content"`
	ToolUseID string          `json:"tool_use_id"`
	IsError   bool            `json:"is_error"`
}

// Transcript lines routinely exceed bufio's default 64KiB token limit; tool
// results can run to megabytes.
const (
	scannerInitialBuf = 64 * 1024
	scannerMaxBuf     = 32 * 1024 * 1024
)

// Parse reads a newline-delimited transcript into messages and blocks.
// startSeq seeds the compact sequence from the session row; lines carrying a
// lower sequence are refused and counted, keeping the running value
// non-decreasing.
func Parse(r io.Reader, startSeq int) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerInitialBuf), scannerMaxBuf)

	res := &ParseResult{FinalCompactSequence: startSeq}
	seq := startSeq
	lineNumber := 0
	ordinal := 0

	for scanner.Scan() {
		lineNumber++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var line transcriptLine
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		if line.CompactSequence != nil {
			switch {
			case *line.CompactSequence < seq:
				res.Regressions++
			case *line.CompactSequence > seq:
				seq = *line.CompactSequence
			}
		}
		// A compact summary line marks the boundary where earlier context
		// was truncated.
		if line.IsCompactSummary {
			seq++
		}

		if line.Type != "user" && line.Type != "assistant" {
			continue
		}

		msg := Message{
			LineNumber:      lineNumber,
			Ordinal:         ordinal,
			Role:            line.Message.Role,
			Model:           line.Message.Model,
			CompactSequence: seq,
			Metadata: map[string]interface{}{
				"uuid":        line.UUID,
				"parent_uuid": line.ParentUUID,
				"type":        line.Type,
			},
		}
		if msg.Role == "" {
			msg.Role = line.Type
		}
		if ts, err := time.Parse(time.RFC3339, line.Timestamp); err == nil {
			msg.Timestamp = ts
		}
		if u := line.Message.Usage; u != nil {
			msg.HasUsage = true
			msg.TokensIn = u.InputTokens
			msg.TokensOut = u.OutputTokens
			msg.TokensCacheRead = u.CacheReadInputTokens
			msg.TokensCacheWrite = u.CacheCreationInputTokens
		}
		if line.CostUSD != nil {
			msg.HasCost = true
			msg.CostUSD = *line.CostUSD
		}

		blocks, err := parseContent(line.Message.Content)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		msg.Blocks = blocks

		res.Messages = append(res.Messages, msg)
		ordinal++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNumber, err)
	}

	res.FinalCompactSequence = seq
	for i := range res.Messages {
		if res.Messages[i].CompactSequence < seq {
			res.Messages[i].IsCompacted = true
		}
	}
	return res, nil
}

// parseContent handles both content shapes: a bare string (legacy user
// lines) and an array of typed blocks.
func parseContent(content json.RawMessage) ([]Block, error) {
	if len(content) == 0 || string(content) == "null" {
		return nil, nil
	}

	var text string
	if err := json.Unmarshal(content, &text); err == nil {
		return []Block{{Order: 0, Type: "text", Text: text}}, nil
	}

	var rawBlocks []rawBlock
	if err := json.Unmarshal(content, &rawBlocks); err != nil {
		return nil, fmt.Errorf("unrecognized content shape: %w", err)
	}

	blocks := make([]Block, 0, len(rawBlocks))
	for i, rb := range rawBlocks {
		block := Block{Order: i, Type: rb.Type, IsError: rb.IsError}
		switch rb.Type {
		case "text":
			block.Text = rb.Text
		case "thinking":
			block.Text = rb.Thinking
		case "tool_use":
			block.ToolName = rb.Name
			block.ToolInput = rb.Input
		case "tool_result":
			block.ToolResultID = rb.ToolUseID
			block.Text = flattenResult(rb.Content)
		default:
			// Unknown block types keep their raw text when present.
			block.Text = rb.Text
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// flattenResult extracts the text of a tool result, which is either a plain
// string or a list of text blocks.
func flattenResult(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(content, &text); err == nil {
		return text
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(content, &parts); err != nil {
		return string(content)
	}
	out := ""
	for _, p := range parts {
		if p.Type == "text" {
			out += p.Text
		}
	}
	return out
}
