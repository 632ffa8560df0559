package entity

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is the flat admin-side view of a blog entry stored in the CMS.
// Status is derived from the entry's publish timestamp; ImageURL is
// resolved on demand from the linked asset and never persisted.
type Post struct {
	ID            string
	Slug          string
	Title         string
	Content       string
	PublishedDate string // YYYY-MM-DD
	Status        PostStatus
	ImageAssetID  string
	ImageURL      string
}
