package remoteimpl

import (
	"fmt"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

// ToPost maps a remote item to an unarchived Post, dispatching on the item's media type.
func ToPost(item *domain.RemoteItem, handle string) *domain.Post {
	post := &domain.Post{
		ID:        item.PK,
		Date:      item.TakenAt,
		Permalink: fmt.Sprintf("/p/%s/", item.Code),
		Caption:   item.CaptionText,
		Code:      item.Code,
	}

	switch item.MediaType {
	case domain.RemoteMediaAlbum:
		post.Title = "Album by " + handle
		for _, res := range item.Resources {
			post.Media = append(post.Media, resourceMedia(res))
		}
		var thumbURL string
		if len(item.Resources) > 0 {
			thumbURL = item.Resources[0].ThumbnailURL
		}
		post.Thumbnail = domain.NewRemoteMedia(item.PK, domain.MediaTypeImage, thumbURL)

	case domain.RemoteMediaVideo:
		post.Title = "Video by " + handle
		post.Media = []*domain.PostMedia{domain.NewRemoteMedia(item.PK, domain.MediaTypeVideo, item.VideoURL)}
		post.Thumbnail = domain.NewRemoteMedia(item.PK, domain.MediaTypeImage, item.ThumbnailURL)

	default:
		post.Title = "Image by " + handle
		post.Media = []*domain.PostMedia{domain.NewRemoteMedia(item.PK, domain.MediaTypeImage, item.ThumbnailURL)}
		post.Thumbnail = domain.NewRemoteMedia(item.PK, domain.MediaTypeImage, item.ThumbnailURL)
	}

	return post
}

func resourceMedia(res domain.RemoteResource) *domain.PostMedia {
	if res.MediaType == domain.RemoteMediaImage {
		return domain.NewRemoteMedia(res.PK, domain.MediaTypeImage, res.ThumbnailURL)
	}
	return domain.NewRemoteMedia(res.PK, domain.MediaTypeVideo, res.VideoURL)
}
