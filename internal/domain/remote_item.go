package domain

import "time"

// Remote media type discriminators as reported by the account client.
const (
	RemoteMediaImage = 1
	RemoteMediaVideo = 2
	RemoteMediaAlbum = 8
)

// RemoteItem is a raw item returned by the account client, before mapping to a Post.
type RemoteItem struct {
	PK           int64
	TakenAt      time.Time
	CaptionText  string
	Code         string
	MediaType    int
	ThumbnailURL string
	VideoURL     string
	Resources    []RemoteResource
}

// RemoteResource is one sub-resource of an album item.
type RemoteResource struct {
	PK           int64
	MediaType    int
	ThumbnailURL string
	VideoURL     string
}
