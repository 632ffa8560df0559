package postService

import (
	"strings"

	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"
)

const postContentType = "pageBlogPost"

// postFromEntry maps a raw CMS entry to the flat admin record. Field values
// are unwrapped defensively; status is a view of the publish timestamp.
func postFromEntry(entry *cms.Entry, locale string) entity.Post {
	status := entity.PostStatusDraft
	if entry.IsPublished() {
		status = entity.PostStatusPublished
	}

	f := entry.Fields
	return entity.Post{
		ID:            entry.Sys.ID,
		Slug:          f.String("slug", locale),
		Title:         f.String("title", locale),
		Content:       f.String("content", locale),
		PublishedDate: f.String("publishedDate", locale),
		Status:        status,
		ImageAssetID:  cms.AssetLinkID(f.Raw("imageAssetId", locale)),
	}
}

// postFields builds the locale-keyed write payload. The image link is only
// present when an asset id is set; callers on the update path delete the
// field when the id was cleared.
func postFields(p entity.Post, locale string) cms.Fields {
	fields := cms.Fields{
		"slug":          cms.Localized(locale, p.Slug),
		"publishedDate": cms.Localized(locale, p.PublishedDate),
		"title":         cms.Localized(locale, p.Title),
		"content":       cms.Localized(locale, p.Content),
	}

	if p.ImageAssetID != "" {
		fields["imageAssetId"] = cms.Localized(locale, cms.AssetLink(p.ImageAssetID))
	}

	return fields
}

type publishAction int

const (
	actionNone publishAction = iota
	actionPublish
	actionUnpublish
)

// reconcilePublish decides the transition needed to move the entry from its
// current publish state to the desired one. Already being in the target
// state yields no action, so repeated saves issue no redundant CMS calls.
func reconcilePublish(currentPublished, desiredPublished bool) publishAction {
	switch {
	case desiredPublished && !currentPublished:
		return actionPublish
	case !desiredPublished && currentPublished:
		return actionUnpublish
	default:
		return actionNone
	}
}

// datePart truncates an ISO datetime-ish string to its YYYY-MM-DD portion.
func datePart(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
