package inputstream

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewlineNormalization(t *testing.T) {
	t.Parallel()
	s, err := New([]byte("a\r\nb\rc\n"), Config{Encoding: "utf-8"})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", s.CharsUntil("", false))

	line, col := s.Position()
	assert.Equal(t, 4, line)
	assert.Equal(t, 0, col)
}

func TestUnget(t *testing.T) {
	t.Parallel()
	s, err := New([]byte("ab"), Config{Encoding: "utf-8"})
	require.NoError(t, err)

	r, eof := s.Next()
	require.False(t, eof)
	assert.Equal(t, 'a', r)
	s.Unget()
	r, _ = s.Next()
	assert.Equal(t, 'a', r)
	r, _ = s.Next()
	assert.Equal(t, 'b', r)

	_, eof = s.Next()
	assert.True(t, eof)
	s.Unget()
	_, eof = s.Next()
	assert.True(t, eof)

	s.Unget()
	assert.Panics(t, func() { s.Unget() })
}

func TestCharsUntil(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  string
		set    string
		invert bool
		run    string
		next   rune
	}{
		{"stop at amp", "abc&def", "&<", false, "abc", '&'},
		{"whitespace run", "  \t\nx", " \t\n\f", true, "  \t\n", 'x'},
		{"empty run", "<a>", "<", false, "", '<'},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := New([]byte(tt.input), Config{Encoding: "utf-8"})
			require.NoError(t, err)
			assert.Equal(t, tt.run, s.CharsUntil(tt.set, tt.invert))
			r, eof := s.Next()
			require.False(t, eof)
			assert.Equal(t, tt.next, r)
		})
	}
}

func TestInvalidCodepointsReportedOnce(t *testing.T) {
	t.Parallel()
	s, err := New([]byte("a\x01b"), Config{Encoding: "utf-8"})
	require.NoError(t, err)

	s.Next()
	s.Next()
	s.Unget()
	s.Next()
	s.Next()
	assert.Equal(t, []string{"invalid-codepoint"}, s.PopErrors())
	assert.Empty(t, s.PopErrors())
}

func TestSniffing(t *testing.T) {
	t.Parallel()
	s, err := New([]byte("\xef\xbb\xbfhi"), Config{})
	require.NoError(t, err)
	name, certain := s.Encoding()
	assert.Equal(t, "utf-8", name)
	assert.True(t, certain)
	assert.Equal(t, "hi", s.CharsUntil("", false))

	s, err = New([]byte("<p>caf\xe9"), Config{})
	require.NoError(t, err)
	name, certain = s.Encoding()
	assert.Equal(t, "windows-1252", name)
	assert.False(t, certain)
	assert.Equal(t, "<p>café", s.CharsUntil("", false))
}

func TestChangeEncoding(t *testing.T) {
	t.Parallel()
	s, err := New([]byte("<p>hi"), Config{})
	require.NoError(t, err)

	err = s.ChangeEncoding("utf-8")
	var changed *EncodingChangedError
	require.True(t, errors.As(err, &changed))
	assert.Equal(t, "windows-1252", changed.From)
	assert.Equal(t, "utf-8", changed.To)

	assert.NoError(t, s.ChangeEncoding("no-such-encoding"))
	assert.NoError(t, s.ChangeEncoding("latin1"))
	_, certain := s.Encoding()
	assert.True(t, certain)

	certainStream, err := New([]byte("<p>hi"), Config{Encoding: "utf-8"})
	require.NoError(t, err)
	assert.NoError(t, certainStream.ChangeEncoding("windows-1252"))
}

func TestUnknownEncoding(t *testing.T) {
	t.Parallel()
	_, err := New([]byte("x"), Config{Encoding: "klingon"})
	assert.Error(t, err)
}
