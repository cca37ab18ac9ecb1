package types_test

import (
	"testing"

	"github.com/sktedro/ipp22/lang/types"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	cases := []struct {
		desc string
		x, y types.Value
		want bool
	}{
		{"int eq", types.Int(1), types.Int(1), true},
		{"int neq", types.Int(1), types.Int(2), false},
		{"str eq", types.Str("a"), types.Str("a"), true},
		{"bool eq", types.True, types.True, true},
		{"nil eq nil", types.Nil, types.Nil, true},
		{"nil vs int", types.Nil, types.Int(1), false},
		{"int vs nil", types.Int(1), types.Nil, false},
		{"int vs str same text", types.Int(1), types.Str("1"), false},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			require.Equal(t, c.want, types.Equal(c.x, c.y))
		})
	}
}

func TestLess(t *testing.T) {
	require.True(t, types.Less(types.Int(1), types.Int(2)))
	require.False(t, types.Less(types.Int(2), types.Int(1)))
	require.True(t, types.Less(types.False, types.True))
	require.True(t, types.Less(types.Str("a"), types.Str("b")))
}

func TestStrRunes(t *testing.T) {
	s := types.Str("héllo")
	require.Equal(t, 5, len(s.Runes()))
}
