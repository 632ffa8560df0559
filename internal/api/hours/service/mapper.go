package hoursService

import (
	"strings"

	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"
)

const hourContentType = "openingHours"

// hourFromEntry maps a raw CMS entry to the flat schedule record. The date is
// derived by truncating the stored opening timestamp; the other fields are
// unwrapped defensively.
func hourFromEntry(entry *cms.Entry, locale string) entity.IrregularHour {
	f := entry.Fields
	return entity.IrregularHour{
		ID:        entry.Sys.ID,
		Date:      datePart(f.String("openingTime", locale)),
		OpenTime:  f.String("openTime", locale),
		CloseTime: f.String("closeTime", locale),
		IsClosed:  f.Bool("isClosed", locale),
		Notes:     f.String("notes", locale),
	}
}

// hourFields builds the locale-keyed write payload. The date is stored as a
// midnight UTC timestamp so the CMS can order on it; open/close times are
// cleared when the day is marked closed.
func hourFields(h entity.IrregularHour, locale string) cms.Fields {
	openTime := h.OpenTime
	closeTime := h.CloseTime
	if h.IsClosed {
		openTime = ""
		closeTime = ""
	}

	return cms.Fields{
		"openingTime": cms.Localized(locale, h.Date+"T00:00:00Z"),
		"openTime":    cms.Localized(locale, openTime),
		"closeTime":   cms.Localized(locale, closeTime),
		"isClosed":    cms.Localized(locale, h.IsClosed),
		"notes":       cms.Localized(locale, h.Notes),
	}
}

// datePart truncates an ISO datetime-ish string to its YYYY-MM-DD portion.
func datePart(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
