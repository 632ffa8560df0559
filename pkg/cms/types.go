package cms

// Sys is the system metadata the CMS attaches to entries, assets and uploads.
// Publish state is tracked through PublishedAt, not a boolean flag.
type Sys struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	Version     int    `json:"version,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// Fields holds an entry's field payload. The management API wraps every
// value in a {locale: value} envelope; the delivery API may return the
// value already resolved. Accessors in field.go handle both shapes.
type Fields map[string]interface{}

type Entry struct {
	Sys    Sys    `json:"sys"`
	Fields Fields `json:"fields"`
}

func (e *Entry) IsPublished() bool {
	return e.Sys.PublishedAt != ""
}

type LinkSys struct {
	Type     string `json:"type"`
	LinkType string `json:"linkType"`
	ID       string `json:"id"`
}

type Link struct {
	Sys LinkSys `json:"sys"`
}

type AssetFile struct {
	URL         string `json:"url,omitempty"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	UploadFrom  *Link  `json:"uploadFrom,omitempty"`
}

type AssetFields struct {
	Title map[string]string    `json:"title"`
	File  map[string]AssetFile `json:"file"`
}

type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

// FileURL returns the processed file URL for the given locale, or ""
// while the asset is still processing.
func (a *Asset) FileURL(locale string) string {
	if a == nil {
		return ""
	}
	return a.Fields.File[locale].URL
}

type entryCollection struct {
	Total int     `json:"total"`
	Items []Entry `json:"items"`
}
