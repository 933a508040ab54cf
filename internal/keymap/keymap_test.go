package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPressExactMatch(t *testing.T) {
	m := New()
	require.NoError(t, m.Bind(Sequence{"Z", "Z"}, Sequence{"q"}))

	mapped, handled := m.Press("Z")
	assert.Nil(t, mapped)
	assert.True(t, handled)
	assert.True(t, m.Pending())

	mapped, handled = m.Press("Z")
	assert.Equal(t, Sequence{"q"}, mapped)
	assert.True(t, handled)
	assert.False(t, m.Pending())
}

func TestPressDeadEndResets(t *testing.T) {
	m := New()
	require.NoError(t, m.Bind(Sequence{"Z", "Z"}, Sequence{"q"}))

	_, handled := m.Press("Z")
	require.True(t, handled)

	mapped, handled := m.Press("x")
	assert.Nil(t, mapped)
	assert.False(t, handled)
	assert.False(t, m.Pending())

	// The failed attempt must not leak into the next press.
	mapped, handled = m.Press("Z")
	assert.Nil(t, mapped)
	assert.True(t, handled)
}

func TestPressUnboundKey(t *testing.T) {
	m := New()
	mapped, handled := m.Press("q")
	assert.Nil(t, mapped)
	assert.False(t, handled)
}

func TestPressSingleKeyBinding(t *testing.T) {
	m := New()
	require.NoError(t, m.Bind(Sequence{"Q"}, Sequence{"q"}))

	mapped, handled := m.Press("Q")
	assert.Equal(t, Sequence{"q"}, mapped)
	assert.True(t, handled)
}

func TestLongestPrefixKeepsAccumulating(t *testing.T) {
	m := New()
	require.NoError(t, m.Bind(Sequence{"g", "g", "g"}, Sequence{"q"}))

	for i := 0; i < 2; i++ {
		mapped, handled := m.Press("g")
		require.Nil(t, mapped)
		require.True(t, handled)
	}
	mapped, handled := m.Press("g")
	assert.Equal(t, Sequence{"q"}, mapped)
	assert.True(t, handled)
}

func TestBindWhilePendingRejected(t *testing.T) {
	m := New()
	require.NoError(t, m.Bind(Sequence{"Z", "Z"}, Sequence{"q"}))
	_, handled := m.Press("Z")
	require.True(t, handled)

	assert.Error(t, m.Bind(Sequence{"x"}, Sequence{"y"}))
	assert.Error(t, m.Unbind(Sequence{"Z", "Z"}))

	m.Reset()
	assert.NoError(t, m.Bind(Sequence{"x"}, Sequence{"y"}))
}

func TestBindEmptySequence(t *testing.T) {
	m := New()
	assert.Error(t, m.Bind(nil, Sequence{"q"}))
}

func TestUnbindUnknownIsNoop(t *testing.T) {
	m := New()
	assert.NoError(t, m.Unbind(Sequence{"n", "o"}))
}

func TestUnbindRemovesBinding(t *testing.T) {
	m := New()
	require.NoError(t, m.Bind(Sequence{"Z", "Z"}, Sequence{"q"}))
	require.NoError(t, m.Unbind(Sequence{"Z", "Z"}))

	_, handled := m.Press("Z")
	assert.False(t, handled)
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Sequence
		wantErr bool
	}{
		{name: "runes", raw: "ZZ", want: Sequence{"Z", "Z"}},
		{name: "single", raw: "q", want: Sequence{"q"}},
		{name: "bracketed", raw: "<ctrl+c>", want: Sequence{"ctrl+c"}},
		{name: "mixed", raw: "<esc>q", want: Sequence{"esc", "q"}},
		{name: "empty", raw: "", wantErr: true},
		{name: "unterminated", raw: "<ctrl", wantErr: true},
		{name: "empty_token", raw: "<>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSequence(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSequenceString(t *testing.T) {
	assert.Equal(t, "ZZ", Sequence{"Z", "Z"}.String())
	assert.Equal(t, "<ctrl+c>x", Sequence{"ctrl+c", "x"}.String())
}
