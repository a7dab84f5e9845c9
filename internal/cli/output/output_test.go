package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{ModeAuto, ModeText},
		{"", ModeText},
		{ModeTable, ModeTable},
		{ModeText, ModeText},
		{ModeJSON, ModeJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_PlainStylesOffTerminal(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeAuto)
	r.Header("Results")
	assert.Equal(t, "Results\n", out.String())
	assert.False(t, IsTerminal(&out))
}

func TestRenderer_Table(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeTable)
	r.Table([]string{"Name", "Polynomial"}, [][]any{{"e1", "0 + 1x^1"}})

	s := out.String()
	assert.Contains(t, s, "NAME")
	assert.Contains(t, s, "e1")
	assert.Contains(t, s, "0 + 1x^1")
	assert.Contains(t, s, "┌")
}

func TestRenderer_JSONAndWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, out.String())

	r.Warnf("mismatch in %s", "e2")
	assert.Equal(t, "mismatch in e2", strings.TrimSpace(errOut.String()))
}
