package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLLMError(t *testing.T) {
	err := NewLLMError("gpt-4o-mini", "Complete", ErrServiceUnavailable)

	assert.Equal(t, "llm error: model=gpt-4o-mini, operation=Complete, err=service unavailable", err.Error())
	assert.True(t, errors.Is(err, ErrServiceUnavailable), "should unwrap to underlying error")
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name    string
		roll    string
		op      string
		wantMsg string
	}{
		{"save failure carries the roll", "CS101", "SaveEvaluation", "store error: operation=SaveEvaluation, roll=CS101, err=boom"},
		{"reset failure is collection-wide", "", "ResetAll", "store error: operation=ResetAll, err=boom"},
	}

	base := errors.New("boom")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStoreError(tt.roll, tt.op, base)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, errors.Is(err, base))
		})
	}
}
