package hours

import "AtelierAdmin/pkg/response"

var (
	ErrHourNotFound = response.NewError(404, "irregular hour not found")
	ErrLoadHours    = response.NewError(500, "failed to load irregular hours")
	ErrCreateHour   = response.NewError(500, "failed to create irregular hour")
	ErrUpdateHour   = response.NewError(500, "failed to update irregular hour")
	ErrDeleteHour   = response.NewError(500, "failed to delete irregular hour")
)
