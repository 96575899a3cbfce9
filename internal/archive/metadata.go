package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

// DateLayout is how post dates are written to front matter.
const DateLayout = "2006-01-02 15:04:05 -0700"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Metadata is the front matter schema of an archive document.
type Metadata struct {
	Layout      string          `yaml:"layout"`
	ID          int64           `yaml:"id" validate:"required"`
	Title       string          `yaml:"title"`
	Date        string          `yaml:"date" validate:"required"`
	Thumbnail   string          `yaml:"thumbnail" validate:"required"`
	Code        string          `yaml:"code" validate:"required"`
	Media       []MediaMetadata `yaml:"media" validate:"dive"`
	Permalink   string          `yaml:"permalink"`
	ArchiveDate string          `yaml:"archive_date,omitempty"`
}

type MediaMetadata struct {
	ID   int64  `yaml:"id" validate:"required"`
	Type string `yaml:"type" validate:"oneof=image video"`
	URL  string `yaml:"url" validate:"required"`
}

// NewMetadata builds the front matter of an archived post. Every asset must be downloaded.
func NewMetadata(p *domain.Post) Metadata {
	meta := Metadata{
		Layout:    "post",
		ID:        p.ID,
		Title:     p.Title,
		Date:      p.Date.Format(DateLayout),
		Code:      p.Code,
		Media:     make([]MediaMetadata, 0, len(p.Media)),
		Permalink: p.Permalink,
	}
	if p.Thumbnail != nil {
		meta.Thumbnail = p.Thumbnail.LocalPath
	}
	for _, m := range p.Media {
		meta.Media = append(meta.Media, MediaMetadata{
			ID:   m.ID,
			Type: string(m.Type),
			URL:  m.LocalPath,
		})
	}
	if p.ArchiveDate != nil {
		meta.ArchiveDate = p.ArchiveDate.Format(time.DateOnly)
	}
	return meta
}

// ToPost rehydrates a post from validated metadata and the document body.
func (m Metadata) ToPost(body string) (*domain.Post, error) {
	date, err := parseDate(m.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	post := &domain.Post{
		ID:        m.ID,
		Title:     m.Title,
		Date:      date,
		Permalink: m.Permalink,
		Caption:   body,
		Code:      m.Code,
		Thumbnail: domain.NewLocalMedia(m.ID, domain.MediaTypeImage, m.Thumbnail),
		Media:     make([]*domain.PostMedia, 0, len(m.Media)),
	}

	if m.ArchiveDate != "" {
		archived, err := parseDate(m.ArchiveDate)
		if err != nil {
			return nil, fmt.Errorf("archive_date: %w", err)
		}
		post.ArchiveDate = &archived
	}

	for _, media := range m.Media {
		post.Media = append(post.Media, domain.NewLocalMedia(media.ID, domain.MediaType(media.Type), media.URL))
	}
	return post, nil
}

// Body renders a caption so every line break survives Markdown rendering.
func Body(caption string) string {
	return strings.ReplaceAll(caption, "\n", "  \n")
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
