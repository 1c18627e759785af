package common

import (
	"testing"

	"github.com/bitrise-io/go-utils/pointers"
	"github.com/stretchr/testify/require"
)

func TestNotifierConfig_IconURL(t *testing.T) {
	t.Log("First non empty avatar wins")
	{
		config := DefaultNotifierConfig()
		require.Equal(t, pointers.NewStringPtr("b"), config.IconURL("", "b", "c"))
	}

	t.Log("No avatar, no default")
	{
		config := DefaultNotifierConfig()
		require.Nil(t, config.IconURL("", ""))
	}

	t.Log("No avatar, default configured")
	{
		config := DefaultNotifierConfig()
		config.DefaultAvatar = pointers.NewStringPtr("https://chat/default.png")
		require.Equal(t, pointers.NewStringPtr("https://chat/default.png"), config.IconURL(""))
	}

	t.Log("Rocket.Chat avatar forced")
	{
		config := DefaultNotifierConfig()
		config.UseRocketChatAvatar = true
		require.Nil(t, config.IconURL("a"))
	}
}
