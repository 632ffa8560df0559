package entity

// IrregularHour is one exception in the business-hours calendar. Open and
// close times only carry meaning while IsClosed is false; a closed day has
// them cleared.
type IrregularHour struct {
	ID        string
	Date      string // YYYY-MM-DD
	OpenTime  string // HH:MM
	CloseTime string // HH:MM
	IsClosed  bool
	Notes     string
}
