package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme_Default(t *testing.T) {
	css, found := GetEmbeddedTheme("default")
	require.True(t, found, "default stylesheet should be found")
	assert.Contains(t, css, ".alert-error")
	assert.Contains(t, css, ".alert-success")
	assert.Contains(t, css, ".toast-paused")
	assert.Contains(t, css, "@window_bg_color")
}

func TestGetEmbeddedTheme_Partial(t *testing.T) {
	css, found := GetEmbeddedTheme("_animations.css")
	require.True(t, found)
	assert.Contains(t, css, "@keyframes error-cross-in")
}

func TestGetEmbeddedTheme_Unknown(t *testing.T) {
	_, found := GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
}

func TestEmbeddedThemes_AnimationsForEveryIcon(t *testing.T) {
	css, found := GetEmbeddedTheme("_animations")
	require.True(t, found)

	for _, name := range []string{
		"error-background-in", "error-background-out",
		"error-cross-in", "error-cross-out",
		"success-background-in", "success-background-out",
		"success-checkmark-in", "success-checkmark-out",
	} {
		assert.Contains(t, css, ".anim-"+name, name)
	}
}
