package cms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const managementContentType = "application/vnd.contentful.management.v1+json"

var ErrNotFound = errors.New("cms: entry not found")

// APIError carries the raw error payload the CMS returned, so callers can
// log it for diagnosis.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms: unexpected status %d: %s", e.StatusCode, e.Body)
}

type ItfCMS interface {
	Locale() string
	GetEntry(ctx context.Context, id string) (*Entry, error)
	QueryEntries(ctx context.Context, contentType, order string) ([]Entry, error)
	CreateEntry(ctx context.Context, contentType string, fields Fields) (*Entry, error)
	UpdateEntry(ctx context.Context, entry *Entry) (*Entry, error)
	PublishEntry(ctx context.Context, entry *Entry) (*Entry, error)
	UnpublishEntry(ctx context.Context, entry *Entry) (*Entry, error)
	DeleteEntry(ctx context.Context, entry *Entry) error
	UploadBinary(ctx context.Context, body io.Reader) (string, error)
	CreateAsset(ctx context.Context, fields AssetFields) (*Asset, error)
	GetAsset(ctx context.Context, id string) (*Asset, error)
	ProcessAsset(ctx context.Context, asset *Asset) error
	PublishAsset(ctx context.Context, asset *Asset) (*Asset, error)
}

type Config struct {
	SpaceID       string
	Environment   string
	DefaultLocale string
	AccessToken   string
	APIBaseURL    string
	UploadBaseURL string
	Timeout       time.Duration
}

func ConfigFromEnv() Config {
	cfg := Config{
		SpaceID:       os.Getenv("CMS_SPACE_ID"),
		Environment:   os.Getenv("CMS_ENVIRONMENT"),
		DefaultLocale: os.Getenv("CMS_DEFAULT_LOCALE"),
		AccessToken:   os.Getenv("CMS_MANAGEMENT_TOKEN"),
		APIBaseURL:    os.Getenv("CMS_API_BASE_URL"),
		UploadBaseURL: os.Getenv("CMS_UPLOAD_BASE_URL"),
	}
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en-US"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://api.contentful.com"
	}
	if cfg.UploadBaseURL == "" {
		cfg.UploadBaseURL = "https://upload.contentful.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}

type client struct {
	cfg  Config
	http *http.Client
	log  *logrus.Logger
}

func New(cfg Config, log *logrus.Logger) (ItfCMS, error) {
	if cfg.SpaceID == "" {
		return nil, fmt.Errorf("cms: CMS_SPACE_ID is not set")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("cms: CMS_MANAGEMENT_TOKEN is not set")
	}

	return &client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

func (c *client) Locale() string {
	return c.cfg.DefaultLocale
}

func (c *client) envURL(path string) string {
	return fmt.Sprintf("%s/spaces/%s/environments/%s/%s",
		c.cfg.APIBaseURL, c.cfg.SpaceID, c.cfg.Environment, path)
}

func (c *client) do(ctx context.Context, method, rawURL string, body io.Reader, version int, extraHeaders map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Content-Type", managementContentType)
	if version > 0 {
		req.Header.Set("X-Contentful-Version", strconv.Itoa(version))
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return &APIError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

func (c *client) doJSON(ctx context.Context, method, rawURL string, payload interface{}, version int, extraHeaders map[string]string, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, rawURL, body, version, extraHeaders, out)
}

func (c *client) GetEntry(ctx context.Context, id string) (*Entry, error) {
	var entry Entry
	if err := c.do(ctx, http.MethodGet, c.envURL("entries/"+id), nil, 0, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *client) QueryEntries(ctx context.Context, contentType, order string) ([]Entry, error) {
	params := url.Values{}
	params.Set("content_type", contentType)
	if order != "" {
		params.Set("order", order)
	}

	var collection entryCollection
	if err := c.do(ctx, http.MethodGet, c.envURL("entries")+"?"+params.Encode(), nil, 0, nil, &collection); err != nil {
		return nil, err
	}
	return collection.Items, nil
}

func (c *client) CreateEntry(ctx context.Context, contentType string, fields Fields) (*Entry, error) {
	payload := map[string]interface{}{"fields": fields}
	headers := map[string]string{"X-Contentful-Content-Type": contentType}

	var entry Entry
	if err := c.doJSON(ctx, http.MethodPost, c.envURL("entries"), payload, 0, headers, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *client) UpdateEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	payload := map[string]interface{}{"fields": entry.Fields}

	var updated Entry
	if err := c.doJSON(ctx, http.MethodPut, c.envURL("entries/"+entry.Sys.ID), payload, entry.Sys.Version, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *client) PublishEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	var published Entry
	if err := c.do(ctx, http.MethodPut, c.envURL("entries/"+entry.Sys.ID+"/published"), nil, entry.Sys.Version, nil, &published); err != nil {
		return nil, err
	}
	return &published, nil
}

func (c *client) UnpublishEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	var unpublished Entry
	if err := c.do(ctx, http.MethodDelete, c.envURL("entries/"+entry.Sys.ID+"/published"), nil, entry.Sys.Version, nil, &unpublished); err != nil {
		return nil, err
	}
	return &unpublished, nil
}

func (c *client) DeleteEntry(ctx context.Context, entry *Entry) error {
	return c.do(ctx, http.MethodDelete, c.envURL("entries/"+entry.Sys.ID), nil, entry.Sys.Version, nil, nil)
}

// UploadBinary pushes raw bytes to the upload endpoint and returns the
// upload reference id for linking into an asset.
func (c *client) UploadBinary(ctx context.Context, body io.Reader) (string, error) {
	uploadURL := fmt.Sprintf("%s/spaces/%s/uploads", c.cfg.UploadBaseURL, c.cfg.SpaceID)
	headers := map[string]string{"Content-Type": "application/octet-stream"}

	var upload struct {
		Sys Sys `json:"sys"`
	}
	if err := c.do(ctx, http.MethodPost, uploadURL, body, 0, headers, &upload); err != nil {
		return "", err
	}
	return upload.Sys.ID, nil
}

func (c *client) CreateAsset(ctx context.Context, fields AssetFields) (*Asset, error) {
	payload := map[string]interface{}{"fields": fields}

	var asset Asset
	if err := c.doJSON(ctx, http.MethodPost, c.envURL("assets"), payload, 0, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *client) GetAsset(ctx context.Context, id string) (*Asset, error) {
	var asset Asset
	if err := c.do(ctx, http.MethodGet, c.envURL("assets/"+id), nil, 0, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *client) ProcessAsset(ctx context.Context, asset *Asset) error {
	path := fmt.Sprintf("assets/%s/files/%s/process", asset.Sys.ID, c.cfg.DefaultLocale)
	return c.do(ctx, http.MethodPut, c.envURL(path), nil, asset.Sys.Version, nil, nil)
}

func (c *client) PublishAsset(ctx context.Context, asset *Asset) (*Asset, error) {
	var published Asset
	if err := c.do(ctx, http.MethodPut, c.envURL("assets/"+asset.Sys.ID+"/published"), nil, asset.Sys.Version, nil, &published); err != nil {
		return nil, err
	}
	return &published, nil
}
