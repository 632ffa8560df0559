package posts

type SavePostRequest struct {
	Slug          string `json:"slug" validate:"required,min=1,max=256"`
	Title         string `json:"title" validate:"required,min=1,max=256"`
	Content       string `json:"content" validate:"required"`
	PublishedDate string `json:"published_date" validate:"required,datetime=2006-01-02"`
	Status        string `json:"status" validate:"required,oneof=draft published"`
	ImageAssetID  string `json:"image_asset_id" validate:"omitempty,max=64"`
}

type PostResponse struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	PublishedDate string `json:"published_date"`
	Status        string `json:"status"`
	ImageAssetID  string `json:"image_asset_id,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}

type PostListItem struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	PublishedDate string `json:"published_date"`
	Status        string `json:"status"`
	ImageAssetID  string `json:"image_asset_id,omitempty"`
}

type PostListResponse struct {
	Posts []PostListItem `json:"posts"`
	Total int            `json:"total"`
}
