package postService

import (
	"errors"
	"mime/multipart"
	"strings"

	posts "AtelierAdmin/internal/api/post"
	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"
	contextPkg "AtelierAdmin/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *postsService) GetAllPosts(ctx context.Context) (*posts.PostListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	entries, err := s.cmsClient.QueryEntries(ctx, postContentType, "-fields.publishedDate")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to query post entries")
		return nil, posts.ErrLoadPosts
	}

	locale := s.cmsClient.Locale()
	items := make([]posts.PostListItem, 0, len(entries))
	for i := range entries {
		post := postFromEntry(&entries[i], locale)
		items = append(items, posts.PostListItem{
			ID:            post.ID,
			Slug:          post.Slug,
			Title:         post.Title,
			PublishedDate: datePart(post.PublishedDate),
			Status:        string(post.Status),
			ImageAssetID:  post.ImageAssetID,
		})
	}

	return &posts.PostListResponse{
		Posts: items,
		Total: len(items),
	}, nil
}

func (s *postsService) GetPostByID(ctx context.Context, id string) (*entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)

	entry, err := s.cmsClient.GetEntry(ctx, id)
	if err != nil {
		// A failed fetch and a missing entry collapse to the same
		// not-found result; the cause only matters for the log.
		if errors.Is(err, cms.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Post entry not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to fetch post entry")
		}
		return nil, posts.ErrPostNotFound
	}

	if entry == nil || len(entry.Fields) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("Post entry has no fields payload")
		return nil, posts.ErrPostNotFound
	}

	post := postFromEntry(entry, s.cmsClient.Locale())

	if post.ImageAssetID != "" {
		post.ImageURL = s.resolveImageURL(ctx, requestID, post.ImageAssetID)
	}

	return &post, nil
}

// resolveImageURL looks up the linked asset's processed file URL.
// Best-effort: a missing or unprocessed asset leaves the URL empty.
func (s *postsService) resolveImageURL(ctx context.Context, requestID, assetID string) string {
	asset, err := s.cmsClient.GetAsset(ctx, assetID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"asset_id":   assetID,
			"error":      err.Error(),
		}).Warn("Failed to resolve image asset")
		return ""
	}

	url := asset.FileURL(s.cmsClient.Locale())
	if url == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"asset_id":   assetID,
		}).Warn("Image asset has no file URL yet")
		return ""
	}

	// The CMS returns protocol-relative URLs.
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

func (s *postsService) CreatePost(ctx context.Context, req posts.SavePostRequest, imageFile *multipart.FileHeader) (*entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)

	post := entity.Post{
		Slug:          req.Slug,
		Title:         req.Title,
		Content:       req.Content,
		PublishedDate: req.PublishedDate,
		Status:        entity.PostStatus(req.Status),
		ImageAssetID:  req.ImageAssetID,
	}

	if imageFile != nil {
		assetID, err := s.uploadImage(ctx, requestID, imageFile)
		if err != nil {
			return nil, err
		}
		post.ImageAssetID = assetID
	}

	locale := s.cmsClient.Locale()

	entry, err := s.cmsClient.CreateEntry(ctx, postContentType, postFields(post, locale))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       post.Slug,
			"error":      err.Error(),
		}).Error("Failed to create post entry")
		return nil, posts.ErrCreatePost
	}

	if post.Status == entity.PostStatusPublished {
		entry, err = s.cmsClient.PublishEntry(ctx, entry)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         entry.Sys.ID,
				"error":      err.Error(),
			}).Error("Failed to publish created post entry")
			return nil, posts.ErrCreatePost
		}
	}

	created := postFromEntry(entry, locale)
	return &created, nil
}

func (s *postsService) UpdatePost(ctx context.Context, id string, req posts.SavePostRequest, imageFile *multipart.FileHeader) (*entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)

	entry, err := s.cmsClient.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Post entry not found for update")
			return nil, posts.ErrPostNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to fetch post entry for update")
		return nil, posts.ErrUpdatePost
	}

	post := entity.Post{
		ID:            id,
		Slug:          req.Slug,
		Title:         req.Title,
		Content:       req.Content,
		PublishedDate: req.PublishedDate,
		Status:        entity.PostStatus(req.Status),
		ImageAssetID:  req.ImageAssetID,
	}

	if imageFile != nil {
		assetID, err := s.uploadImage(ctx, requestID, imageFile)
		if err != nil {
			return nil, err
		}
		post.ImageAssetID = assetID
	}

	locale := s.cmsClient.Locale()

	// Full replace: every mapped field is overwritten, and the image link
	// is removed entirely when no asset id remains.
	if entry.Fields == nil {
		entry.Fields = cms.Fields{}
	}
	for name, value := range postFields(post, locale) {
		entry.Fields[name] = value
	}
	if post.ImageAssetID == "" {
		delete(entry.Fields, "imageAssetId")
	}

	updated, err := s.cmsClient.UpdateEntry(ctx, entry)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update post entry")
		return nil, posts.ErrUpdatePost
	}

	switch reconcilePublish(updated.IsPublished(), post.Status == entity.PostStatusPublished) {
	case actionPublish:
		updated, err = s.cmsClient.PublishEntry(ctx, updated)
	case actionUnpublish:
		updated, err = s.cmsClient.UnpublishEntry(ctx, updated)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to reconcile post publish state")
		return nil, posts.ErrUpdatePost
	}

	result := postFromEntry(updated, locale)
	return &result, nil
}

// DeletePost runs the unpublish-then-delete sequence. It reports success as
// a boolean so the handler can show a uniform message; the underlying
// cause, including any structured CMS error payload, only goes to the log.
func (s *postsService) DeletePost(ctx context.Context, id string) bool {
	requestID := contextPkg.GetRequestID(ctx)

	entry, err := s.cmsClient.GetEntry(ctx, id)
	if err != nil {
		s.logDeleteFailure(requestID, id, "fetch", err)
		return false
	}

	if entry.IsPublished() {
		entry, err = s.cmsClient.UnpublishEntry(ctx, entry)
		if err != nil {
			s.logDeleteFailure(requestID, id, "unpublish", err)
			return false
		}
	}

	if err := s.cmsClient.DeleteEntry(ctx, entry); err != nil {
		s.logDeleteFailure(requestID, id, "delete", err)
		return false
	}

	return true
}

func (s *postsService) logDeleteFailure(requestID, id, step string, err error) {
	fields := logrus.Fields{
		"request_id": requestID,
		"id":         id,
		"step":       step,
		"error":      err.Error(),
	}

	var apiErr *cms.APIError
	if errors.As(err, &apiErr) {
		fields["cms_status"] = apiErr.StatusCode
		fields["cms_response"] = apiErr.Body
	}

	s.log.WithFields(fields).Error("Failed to delete post entry")
}

func (s *postsService) uploadImage(ctx context.Context, requestID string, imageFile *multipart.FileHeader) (string, error) {
	if err := s.utils.ValidateImageFile(imageFile); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"file_name":  imageFile.Filename,
			"error":      err.Error(),
		}).Warn("Invalid image file")
		return "", posts.ErrInvalidFileType
	}

	src, err := imageFile.Open()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"file_name":  imageFile.Filename,
			"error":      err.Error(),
		}).Error("Failed to open uploaded image")
		return "", posts.ErrFailedToUpload
	}
	defer src.Close()

	assetID, err := s.uploader.UploadImage(ctx, imageFile.Filename, imageFile.Header.Get("Content-Type"), src)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"file_name":  imageFile.Filename,
			"error":      err.Error(),
		}).Error("Image upload workflow failed")
		return "", posts.ErrFailedToUpload
	}

	return assetID, nil
}
