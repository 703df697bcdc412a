package consumer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devtrail/devtrail/internal/events"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ackAction
	}{
		{"success acks", nil, actionAck},
		{"validation error terminates", &events.ValidationError{Problems: []string{"bad id"}}, actionTerm},
		{"wrapped validation error terminates", fmt.Errorf("decode: %w", &events.ValidationError{Problems: []string{"bad id"}}), actionTerm},
		{"transient error requeues", errors.New("connection refused"), actionNak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decide(tt.err))
		})
	}
}
