package domain

import (
	"time"
)

// Post is one archivable item. Identity is defined by ID alone.
type Post struct {
	ID          int64
	Title       string
	Date        time.Time  // when the post was created remotely
	ArchiveDate *time.Time // nil until the post has been archived
	Permalink   string     // remote-relative path, e.g. /p/<code>/
	Caption     string
	Code        string // remote short code, names the media directory and the document
	Thumbnail   *PostMedia
	Media       []*PostMedia
}

func (p *Post) IsArchived() bool {
	return p.ArchiveDate != nil
}

func (p *Post) IsAlbum() bool {
	return len(p.Media) > 0
}

// Equal reports whether both posts refer to the same remote item.
func (p *Post) Equal(other *Post) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID
}

// MarkArchived stamps the archive date with the UTC calendar day of t.
func (p *Post) MarkArchived(t time.Time) {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	p.ArchiveDate = &day
}

func (p *Post) RevertArchive() {
	p.ArchiveDate = nil
}

// Clone returns a deep copy of the post and its media.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	if p.ArchiveDate != nil {
		day := *p.ArchiveDate
		c.ArchiveDate = &day
	}
	c.Thumbnail = p.Thumbnail.Clone()
	if p.Media != nil {
		c.Media = make([]*PostMedia, len(p.Media))
		for i, m := range p.Media {
			c.Media[i] = m.Clone()
		}
	}
	return &c
}

// Assets returns every asset of the post in download order: media first, thumbnail last.
func (p *Post) Assets() []*PostMedia {
	assets := make([]*PostMedia, 0, len(p.Media)+1)
	assets = append(assets, p.Media...)
	if p.Thumbnail != nil {
		assets = append(assets, p.Thumbnail)
	}
	return assets
}

// PostSet indexes posts by identity.
type PostSet map[int64]*Post

func NewPostSet(posts []*Post) PostSet {
	set := make(PostSet, len(posts))
	for _, p := range posts {
		if _, ok := set[p.ID]; !ok {
			set[p.ID] = p
		}
	}
	return set
}

func (s PostSet) Contains(p *Post) bool {
	_, ok := s[p.ID]
	return ok
}

// Difference returns the posts of remote whose identity is absent from local.
// Remote order is kept and duplicate ids are collapsed to their first occurrence.
func Difference(remote, local []*Post) []*Post {
	known := NewPostSet(local)
	seen := make(map[int64]struct{}, len(remote))

	var out []*Post
	for _, p := range remote {
		if known.Contains(p) {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
