package instagramimpl

import (
	"testing"

	"github.com/Davincible/goinsta/v3"
	"github.com/stretchr/testify/assert"
)

func TestBestVideoURL(t *testing.T) {
	videos := []goinsta.Video{
		{URL: "small", Width: 320, Height: 240},
		{URL: "large", Width: 1080, Height: 1920},
		{URL: "medium", Width: 720, Height: 1280},
	}
	assert.Equal(t, "large", bestVideoURL(videos))
	assert.Equal(t, "", bestVideoURL(nil))
}
