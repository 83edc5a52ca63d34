package likematch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompilePercentMatchesAnyRun(t *testing.T) {
	re, err := Compile("foo%")
	require.NoError(t, err)
	require.True(t, re.MatchString("foo"))
	require.True(t, re.MatchString("foobar"))
	require.False(t, re.MatchString("xfoo"))
}

func TestCompileUnderscoreMatchesExactlyOneChar(t *testing.T) {
	re, err := Compile("f_o")
	require.NoError(t, err)
	require.True(t, re.MatchString("foo"))
	require.False(t, re.MatchString("fo"))
	require.False(t, re.MatchString("fooo"))
}

func TestCompileIsCaseInsensitive(t *testing.T) {
	re, err := Compile("Foo%")
	require.NoError(t, err)
	require.True(t, re.MatchString("FOOBAR"))
	require.True(t, re.MatchString("foobar"))
}

func TestCompileEscapesRegexMetacharacters(t *testing.T) {
	re, err := Compile("a.b(c)")
	require.NoError(t, err)
	require.True(t, re.MatchString("a.b(c)"))
	require.False(t, re.MatchString("axbyc"))
}

func TestCompileAnchorsFullString(t *testing.T) {
	re, err := Compile("foo")
	require.NoError(t, err)
	require.False(t, re.MatchString("xfooy"))
	require.True(t, re.MatchString("foo"))
}
