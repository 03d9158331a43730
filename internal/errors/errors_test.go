package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestKindMarks(t *testing.T) {
	base := New("disk full")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"retrieval", Retrieval(base, "read manifest"), "retrieval"},
		{"persistence", Persistence(base, "load baseline"), "persistence"},
		{"write", Write(base, "write %s", "_TAGS.cs"), "write"},
		{"collision", Wrap(ErrIdentifierCollision, "tags"), "collision"},
		{"force warning", Wrap(ErrForceGenerateOnAbsent, "_TAGS.cs"), "warning"},
		{"update warning", Wrap(ErrUpdateOnMissing, "_TAGS.cs"), "warning"},
		{"plain", base, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestMarkPreservesCause(t *testing.T) {
	base := New("permission denied")
	err := Write(base, "write %s", "out.cs")

	require.Error(t, err)
	assert.True(t, Is(err, ErrWrite))
	assert.True(t, Is(err, base))
	assert.False(t, Is(err, ErrRetrieval))
	assert.Contains(t, err.Error(), "write out.cs")
}

func TestHints(t *testing.T) {
	err := WithHint(Wrap(ErrIdentifierCollision, "tags"), "rename one of the tags")
	assert.Contains(t, FlattenHints(err), "rename one of the tags")
}
