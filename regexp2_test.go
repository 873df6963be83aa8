package fuzzex

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fuzzex/engine/dotnet"
)

func regexp2Runtime(t *testing.T, timeout time.Duration) *runtimeContext {
	t.Helper()
	rt := &runtimeContext{}
	cfg := DefaultConfig()
	cfg.Engine = dotnet.Name
	cfg.MatchTimeout = timeout
	require.NoError(t, rt.init(cfg))
	return rt
}

func TestRegexp2Engine(t *testing.T) {
	rt := regexp2Runtime(t, 0)

	re, err := rt.compileRegex(`\d+`)
	require.NoError(t, err)
	defer re.Close()

	ms, err := re.FindAll("123 abc 456")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 3}, {8, 11}}, spans(t, ms))
	assert.Equal(t, FuzzyCounts{}, ms[0].FuzzyCounts())

	got, err := re.Substitute("There are 123 apples", "NUM")
	require.NoError(t, err)
	assert.Equal(t, "There are NUM apples", got)

	got, err = re.Substitute("There are 123 apples", "$0")
	require.NoError(t, err)
	assert.Equal(t, "There are 123 apples", got)
}

func TestRegexp2GroupsAndOffsets(t *testing.T) {
	rt := regexp2Runtime(t, 0)

	re, err := rt.compileRegex(`(?<word>w\w+)(?=!)|(x)`)
	require.NoError(t, err)
	defer re.Close()

	assert.Equal(t, []string{"", "", "word"}, re.SubexpNames())

	ms, err := re.FindAll("héllo wörld!")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	m := ms[0]
	s, e, err := m.Span(0)
	require.NoError(t, err)
	assert.Equal(t, [2]int{6, 11}, [2]int{s, e})

	g, err := m.Group(1)
	require.NoError(t, err)
	assert.False(t, g.Matched)
	word, err := m.Named("word")
	require.NoError(t, err)
	assert.Equal(t, "wörld", word.Text)

	_, err = m.Group(99)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRegexp2CompileError(t *testing.T) {
	rt := regexp2Runtime(t, 0)
	_, err := rt.compileRegex("(")
	require.ErrorIs(t, err, ErrCompile)
}

func TestRegexp2TimeoutIsExecError(t *testing.T) {
	rt := regexp2Runtime(t, 5*time.Millisecond)

	re, err := rt.compileRegex(`(a+)+$`)
	require.NoError(t, err)
	defer re.Close()

	_, err = re.IsMatch(strings.Repeat("a", 40) + "!")
	require.ErrorIs(t, err, ErrExec)
}
