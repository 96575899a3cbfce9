package instagramimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/internal/instagram"
)

// ListItems pages through the account feed until it is exhausted.
func (ig *InstaImpl) ListItems(ctx context.Context, accountID int64) ([]domain.RemoteItem, error) {
	if ig.Client == nil {
		return nil, instagram.ErrNotLoggedIn
	}

	user, err := ig.visitProfile(accountID)
	if err != nil {
		return nil, err
	}

	ig.Logger.Info("Fetching account feed", "account_id", accountID, "username", user.Username)

	feed := user.Feed()
	var items []domain.RemoteItem
	for feed.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, item := range feed.Items {
			items = append(items, toRemoteItem(item))
		}
		ig.Logger.Debug("Feed page fetched", "items", len(items))
	}

	if err := feed.Error(); err != nil && !errors.Is(err, goinsta.ErrNoMore) {
		return nil, fmt.Errorf("failed to list items of %d: %w", accountID, err)
	}

	ig.Logger.Info("Account feed fetched", "account_id", accountID, "items", len(items))
	return items, nil
}

func toRemoteItem(item *goinsta.Item) domain.RemoteItem {
	ri := domain.RemoteItem{
		PK:           item.Pk,
		TakenAt:      time.Unix(item.TakenAt, 0).UTC(),
		CaptionText:  item.Caption.Text,
		Code:         item.Code,
		MediaType:    item.MediaType,
		ThumbnailURL: item.Images.GetBest(),
		VideoURL:     bestVideoURL(item.Videos),
	}

	for i := range item.CarouselMedia {
		child := &item.CarouselMedia[i]
		ri.Resources = append(ri.Resources, domain.RemoteResource{
			PK:           child.Pk,
			MediaType:    child.MediaType,
			ThumbnailURL: child.Images.GetBest(),
			VideoURL:     bestVideoURL(child.Videos),
		})
	}
	return ri
}

func bestVideoURL(videos []goinsta.Video) string {
	best, bestArea := "", -1
	for _, v := range videos {
		if area := v.Width * v.Height; area > bestArea {
			best, bestArea = v.URL, area
		}
	}
	return best
}
