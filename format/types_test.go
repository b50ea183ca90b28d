package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat_Extension(t *testing.T) {
	require.Equal(t, ".json", JSON.Extension())
	require.Equal(t, ".jsonc", JSONC.Extension())
	require.Equal(t, ".msg", Msg.Extension())
	require.Equal(t, "", Format(0xff).Extension())
}

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext    string
		format Format
		ok     bool
	}{
		{".json", JSON, true},
		{"json", JSON, true},
		{".jsonc", JSONC, true},
		{".msg", Msg, true},
		{"msg", Msg, true},
		{".txt", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			f, ok := FromExtension(tt.ext)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.format, f)
		})
	}
}

func TestBuiltinTag(t *testing.T) {
	for _, tag := range []string{TagF64, TagU64, TagStr, TagBin, TagPoint} {
		require.True(t, BuiltinTag(tag), tag)
	}
	require.False(t, BuiltinTag("vec3"))
	require.False(t, BuiltinTag(""))
}
