package conpty

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEnvironment_CallerWins(t *testing.T) {
	ambient := []string{"PATH=/bin", "FOO=baz", "home=/root"}
	env := MergeEnvironment(ambient, map[string]string{"FOO": "bar", "HOME": "/tmp"})

	want := Environment{
		{"FOO", "bar"},
		{"HOME", "/tmp"},
		{"PATH", "/bin"},
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("MergeEnvironment() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeEnvironment_SortedCaseInsensitively(t *testing.T) {
	env := MergeEnvironment([]string{"b=2", "A=1", "_x=4", "c=3", "=C:=C:\\"}, nil)
	assert.Equal(t, []string{"=C:=C:\\", "A=1", "b=2", "c=3", "_x=4"}, env.Strings())
}

func TestMergeEnvironment_SkipsMalformed(t *testing.T) {
	env := MergeEnvironment([]string{"", "NOVALUE", "OK=1"}, nil)
	assert.Equal(t, []string{"OK=1"}, env.Strings())
}

func TestEnvironment_Get(t *testing.T) {
	env := MergeEnvironment([]string{"Path=/bin", "TERM=xterm"}, nil)

	v, ok := env.Get("PATH")
	assert.True(t, ok)
	assert.Equal(t, "/bin", v)

	_, ok = env.Get("SHELL")
	assert.False(t, ok)
}

func TestEnvironment_Block(t *testing.T) {
	env := Environment{{"A", "1"}, {"B", "é"}}
	block := env.Block()

	want := []byte{
		'A', 0, '=', 0, '1', 0, 0, 0,
		'B', 0, '=', 0, 0xE9, 0, 0, 0,
		0, 0,
	}
	assert.Equal(t, want, block)
	assert.Equal(t, len(want), env.BlockSize())
}

func TestEnvironment_BlockSurrogates(t *testing.T) {
	env := Environment{{"EMOJI", "😄"}}
	block := env.Block()
	assert.Len(t, block, env.BlockSize())
	// "EMOJI=" + surrogate pair + NUL + NUL
	assert.Equal(t, (6+2+1+1)*2, len(block))
}

func TestEnvironment_BlockRoundTrip(t *testing.T) {
	env := MergeEnvironment(
		[]string{"PATH=/usr/bin:/bin", "LANG=C.UTF-8", "EMPTY="},
		map[string]string{"FOO": "bar", "Greeting": "こんにちは", "lang": "en_US.UTF-8"},
	)
	got, err := ParseBlock(env.Block())
	require.NoError(t, err)
	if diff := cmp.Diff(env, got); diff != "" {
		t.Errorf("ParseBlock(Block()) mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironment_EmptyBlock(t *testing.T) {
	var env Environment
	assert.Equal(t, []byte{0, 0}, env.Block())

	got, err := ParseBlock([]byte{0, 0})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseBlock_Invalid(t *testing.T) {
	for name, block := range map[string][]byte{
		"odd length":        {'A', 0, 0},
		"no terminator":     {'A', 0, '=', 0, '1', 0},
		"missing final nul": {'A', 0, '=', 0, '1', 0, 0, 0},
		"no separator":      {'A', 0, 0, 0, 0, 0},
	} {
		_, err := ParseBlock(block)
		assert.Error(t, err, name)
	}
}

func TestMergeEnvironment_KeepsBytesOutsideUTF8(t *testing.T) {
	env := MergeEnvironment([]string{"LATIN=caf\xe9"}, map[string]string{"FOO": "bar"})
	if diff := cmp.Diff([]string{"FOO=bar", "LATIN=caf\xe9"}, env.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
	// The block itself can only carry the replacement character.
	assert.Equal(t, env.BlockSize(), len(env.Block()))
}

func TestValidateEnvVar(t *testing.T) {
	valid := map[string]string{
		"FOO":     "bar",
		"EMPTY":   "",
		"=C:":     `C:\`,
		"A":       "b=c",
		"LATIN":   "caf\xe9",
		"lower_x": "1",
	}
	for name, value := range valid {
		assert.NoError(t, ValidateEnvVar(name, value), name)
	}

	invalid := []EnvVar{
		{"", "x"},
		{"A=B", "c"},
		{"=C:=", "x"},
		{"NUL\x00", "x"},
		{"FOO", "a\x00b"},
	}
	for _, v := range invalid {
		assert.Error(t, ValidateEnvVar(v.Name, v.Value), v.Name)
	}
}
