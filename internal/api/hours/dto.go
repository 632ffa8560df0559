package hours

type SaveIrregularHourRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	OpenTime  string `json:"open_time" validate:"omitempty,datetime=15:04"`
	CloseTime string `json:"close_time" validate:"omitempty,datetime=15:04"`
	IsClosed  bool   `json:"is_closed"`
	Notes     string `json:"notes" validate:"omitempty,max=512"`
}

type IrregularHourResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	IsClosed  bool   `json:"is_closed"`
	Notes     string `json:"notes,omitempty"`
}

type IrregularHourListResponse struct {
	Hours []IrregularHourResponse `json:"hours"`
	Total int                     `json:"total"`
}
