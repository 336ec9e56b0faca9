package avatar_test

import (
	"strings"
	"testing"

	"coworkadmin/internal/avatar"

	"github.com/stretchr/testify/require"
)

func TestURLFallsBackToPlaceholder(t *testing.T) {
	require.Equal(t, avatar.PlaceholderPath, avatar.URL(nil))

	empty := ""
	require.Equal(t, avatar.PlaceholderPath, avatar.URL(&empty))

	spaces := "   "
	require.Equal(t, avatar.PlaceholderPath, avatar.URL(&spaces))

	placeholder := avatar.PlaceholderName
	require.Equal(t, avatar.PlaceholderPath, avatar.URL(&placeholder))
}

func TestURLRealFile(t *testing.T) {
	name := "avatar_abc.png"
	require.Equal(t, "/static/avatars/avatar_abc.png", avatar.URL(&name))
}

func TestNewFilenameKeepsExtension(t *testing.T) {
	name := avatar.NewFilename("photo.PNG")
	require.True(t, strings.HasPrefix(name, "avatar_"))
	require.True(t, strings.HasSuffix(name, ".png"))
}

func TestNewFilenameUnknownExtension(t *testing.T) {
	name := avatar.NewFilename("archive.tar.gz")
	require.True(t, strings.HasSuffix(name, ".jpg"))
}
