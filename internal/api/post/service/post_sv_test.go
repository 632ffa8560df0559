package postService

import (
	"context"
	"errors"
	"io"
	"testing"

	posts "AtelierAdmin/internal/api/post"
	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"
	"AtelierAdmin/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCMS is an in-memory stand-in for the management client, counting the
// publish transitions so the idempotency behavior can be asserted.
type fakeCMS struct {
	entry *cms.Entry
	list  []cms.Entry

	getErr     error
	queryErr   error
	createErr  error
	updateErr  error
	publishErr error
	deleteErr  error

	publishCalls   int
	unpublishCalls int
	deleteCalls    int

	createdFields cms.Fields
}

func (f *fakeCMS) Locale() string { return testLocale }

func (f *fakeCMS) GetEntry(ctx context.Context, id string) (*cms.Entry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.entry
	return &cp, nil
}

func (f *fakeCMS) QueryEntries(ctx context.Context, contentType, order string) ([]cms.Entry, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.list, nil
}

func (f *fakeCMS) CreateEntry(ctx context.Context, contentType string, fields cms.Fields) (*cms.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdFields = fields
	return &cms.Entry{Sys: cms.Sys{ID: "created-entry", Version: 1}, Fields: fields}, nil
}

func (f *fakeCMS) UpdateEntry(ctx context.Context, entry *cms.Entry) (*cms.Entry, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	cp := *entry
	cp.Sys.Version++
	return &cp, nil
}

func (f *fakeCMS) PublishEntry(ctx context.Context, entry *cms.Entry) (*cms.Entry, error) {
	f.publishCalls++
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	cp := *entry
	cp.Sys.PublishedAt = "2025-01-01T00:00:00Z"
	return &cp, nil
}

func (f *fakeCMS) UnpublishEntry(ctx context.Context, entry *cms.Entry) (*cms.Entry, error) {
	f.unpublishCalls++
	cp := *entry
	cp.Sys.PublishedAt = ""
	return &cp, nil
}

func (f *fakeCMS) DeleteEntry(ctx context.Context, entry *cms.Entry) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeCMS) UploadBinary(ctx context.Context, body io.Reader) (string, error) {
	return "upload-1", nil
}

func (f *fakeCMS) CreateAsset(ctx context.Context, fields cms.AssetFields) (*cms.Asset, error) {
	return &cms.Asset{Sys: cms.Sys{ID: "asset-1", Version: 1}}, nil
}

func (f *fakeCMS) GetAsset(ctx context.Context, id string) (*cms.Asset, error) {
	return &cms.Asset{
		Sys: cms.Sys{ID: id, Version: 2},
		Fields: cms.AssetFields{
			File: map[string]cms.AssetFile{
				testLocale: {URL: "//images.example.com/pic.png"},
			},
		},
	}, nil
}

func (f *fakeCMS) ProcessAsset(ctx context.Context, asset *cms.Asset) error { return nil }

func (f *fakeCMS) PublishAsset(ctx context.Context, asset *cms.Asset) (*cms.Asset, error) {
	cp := *asset
	cp.Sys.PublishedAt = "2025-01-01T00:00:00Z"
	return &cp, nil
}

func newTestService(fake *fakeCMS) IPostsService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewPostsService(logger, fake, nil, utils.New())
}

func publishedEntry(id string) *cms.Entry {
	return &cms.Entry{
		Sys: cms.Sys{ID: id, Version: 3, PublishedAt: "2024-12-01T00:00:00Z"},
		Fields: cms.Fields{
			"slug":          cms.Localized(testLocale, "old-slug"),
			"title":         cms.Localized(testLocale, "Old title"),
			"content":       cms.Localized(testLocale, "Old body"),
			"publishedDate": cms.Localized(testLocale, "2024-12-01"),
		},
	}
}

func saveRequest(status string) posts.SavePostRequest {
	return posts.SavePostRequest{
		Slug:          "new-slug",
		Title:         "New title",
		Content:       "New body",
		PublishedDate: "2025-02-01",
		Status:        status,
	}
}

func TestUpdatePostAlreadyPublishedStaysPublished(t *testing.T) {
	fake := &fakeCMS{entry: publishedEntry("e1")}
	svc := newTestService(fake)

	result, err := svc.UpdatePost(context.Background(), "e1", saveRequest("published"), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, fake.publishCalls)
	assert.Equal(t, 0, fake.unpublishCalls)
	assert.Equal(t, entity.PostStatusPublished, result.Status)
}

func TestUpdatePostDraftToPublished(t *testing.T) {
	fake := &fakeCMS{entry: &cms.Entry{
		Sys:    cms.Sys{ID: "e1", Version: 1},
		Fields: cms.Fields{"slug": cms.Localized(testLocale, "old-slug")},
	}}
	svc := newTestService(fake)

	result, err := svc.UpdatePost(context.Background(), "e1", saveRequest("published"), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, fake.publishCalls)
	assert.Equal(t, 0, fake.unpublishCalls)
	assert.Equal(t, entity.PostStatusPublished, result.Status)
}

func TestUpdatePostPublishedToDraft(t *testing.T) {
	fake := &fakeCMS{entry: publishedEntry("e1")}
	svc := newTestService(fake)

	result, err := svc.UpdatePost(context.Background(), "e1", saveRequest("draft"), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, fake.publishCalls)
	assert.Equal(t, 1, fake.unpublishCalls)
	assert.Equal(t, entity.PostStatusDraft, result.Status)
}

func TestUpdatePostNotFound(t *testing.T) {
	fake := &fakeCMS{getErr: cms.ErrNotFound}
	svc := newTestService(fake)

	_, err := svc.UpdatePost(context.Background(), "missing", saveRequest("draft"), nil)

	assert.ErrorIs(t, err, posts.ErrPostNotFound)
}

func TestCreatePostPublishesWhenRequested(t *testing.T) {
	fake := &fakeCMS{}
	svc := newTestService(fake)

	result, err := svc.CreatePost(context.Background(), saveRequest("published"), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, fake.publishCalls)
	assert.Equal(t, "created-entry", result.ID)
	assert.Equal(t, entity.PostStatusPublished, result.Status)
}

func TestCreatePostDraftSkipsPublish(t *testing.T) {
	fake := &fakeCMS{}
	svc := newTestService(fake)

	result, err := svc.CreatePost(context.Background(), saveRequest("draft"), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, fake.publishCalls)
	assert.Equal(t, entity.PostStatusDraft, result.Status)
}

func TestDeletePostUnpublishesFirst(t *testing.T) {
	fake := &fakeCMS{entry: publishedEntry("e1")}
	svc := newTestService(fake)

	ok := svc.DeletePost(context.Background(), "e1")

	assert.True(t, ok)
	assert.Equal(t, 1, fake.unpublishCalls)
	assert.Equal(t, 1, fake.deleteCalls)
}

func TestDeletePostDraftSkipsUnpublish(t *testing.T) {
	fake := &fakeCMS{entry: &cms.Entry{Sys: cms.Sys{ID: "e1", Version: 1}}}
	svc := newTestService(fake)

	ok := svc.DeletePost(context.Background(), "e1")

	assert.True(t, ok)
	assert.Equal(t, 0, fake.unpublishCalls)
	assert.Equal(t, 1, fake.deleteCalls)
}

func TestDeletePostReportsFailure(t *testing.T) {
	fake := &fakeCMS{
		entry:     publishedEntry("e1"),
		deleteErr: &cms.APIError{StatusCode: 502, Body: `{"sys":{"id":"BadGateway"}}`},
	}
	svc := newTestService(fake)

	assert.False(t, svc.DeletePost(context.Background(), "e1"))
}

func TestDeletePostFetchFailure(t *testing.T) {
	fake := &fakeCMS{getErr: errors.New("connection refused")}
	svc := newTestService(fake)

	assert.False(t, svc.DeletePost(context.Background(), "e1"))
	assert.Equal(t, 0, fake.deleteCalls)
}

func TestGetPostByIDMissingEntry(t *testing.T) {
	fake := &fakeCMS{getErr: cms.ErrNotFound}
	svc := newTestService(fake)

	_, err := svc.GetPostByID(context.Background(), "missing")

	assert.ErrorIs(t, err, posts.ErrPostNotFound)
}

func TestGetPostByIDEmptyFields(t *testing.T) {
	fake := &fakeCMS{entry: &cms.Entry{Sys: cms.Sys{ID: "e1"}}}
	svc := newTestService(fake)

	_, err := svc.GetPostByID(context.Background(), "e1")

	assert.ErrorIs(t, err, posts.ErrPostNotFound)
}

func TestGetPostByIDResolvesImageURL(t *testing.T) {
	entry := publishedEntry("e1")
	entry.Fields["imageAssetId"] = cms.Localized(testLocale, cms.AssetLink("asset-9"))
	fake := &fakeCMS{entry: entry}
	svc := newTestService(fake)

	post, err := svc.GetPostByID(context.Background(), "e1")

	require.NoError(t, err)
	assert.Equal(t, "asset-9", post.ImageAssetID)
	assert.Equal(t, "https://images.example.com/pic.png", post.ImageURL)
}

func TestGetAllPostsTruncatesDates(t *testing.T) {
	fake := &fakeCMS{list: []cms.Entry{
		{
			Sys: cms.Sys{ID: "e1", PublishedAt: "2025-01-01T00:00:00Z"},
			Fields: cms.Fields{
				"slug":          cms.Localized(testLocale, "first"),
				"title":         cms.Localized(testLocale, "First"),
				"publishedDate": cms.Localized(testLocale, "2025-01-01T00:00:00Z"),
			},
		},
		{
			Sys: cms.Sys{ID: "e2"},
			Fields: cms.Fields{
				"slug":  cms.Localized(testLocale, "second"),
				"title": cms.Localized(testLocale, "Second"),
			},
		},
	}}
	svc := newTestService(fake)

	result, err := svc.GetAllPosts(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "2025-01-01", result.Posts[0].PublishedDate)
	assert.Equal(t, "published", result.Posts[0].Status)
	assert.Equal(t, "draft", result.Posts[1].Status)
}

func TestGetAllPostsQueryFailure(t *testing.T) {
	fake := &fakeCMS{queryErr: errors.New("upstream down")}
	svc := newTestService(fake)

	_, err := svc.GetAllPosts(context.Background())

	assert.ErrorIs(t, err, posts.ErrLoadPosts)
}
