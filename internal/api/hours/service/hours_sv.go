package hoursService

import (
	"errors"
	"time"

	"AtelierAdmin/internal/api/hours"
	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"
	contextPkg "AtelierAdmin/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// GetAllIrregularHours returns the future-facing schedule: entries dated
// before today stay in the CMS but are not surfaced. The date strings are
// YYYY-MM-DD, so the comparison is a plain lexicographic one.
func (s *hoursService) GetAllIrregularHours(ctx context.Context) (*hours.IrregularHourListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	entries, err := s.cmsClient.QueryEntries(ctx, hourContentType, "fields.openingTime")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to query irregular hour entries")
		return nil, hours.ErrLoadHours
	}

	today := time.Now().Format("2006-01-02")
	locale := s.cmsClient.Locale()

	items := make([]hours.IrregularHourResponse, 0, len(entries))
	for i := range entries {
		hour := hourFromEntry(&entries[i], locale)
		if hour.Date < today {
			continue
		}
		items = append(items, hours.IrregularHourResponse{
			ID:        hour.ID,
			Date:      hour.Date,
			OpenTime:  hour.OpenTime,
			CloseTime: hour.CloseTime,
			IsClosed:  hour.IsClosed,
			Notes:     hour.Notes,
		})
	}

	return &hours.IrregularHourListResponse{
		Hours: items,
		Total: len(items),
	}, nil
}

// CreateIrregularHour writes the entry and publishes it right away; the
// schedule has no draft state.
func (s *hoursService) CreateIrregularHour(ctx context.Context, req hours.SaveIrregularHourRequest) (*entity.IrregularHour, error) {
	requestID := contextPkg.GetRequestID(ctx)

	hour := entity.IrregularHour{
		Date:      req.Date,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		IsClosed:  req.IsClosed,
		Notes:     req.Notes,
	}

	locale := s.cmsClient.Locale()

	entry, err := s.cmsClient.CreateEntry(ctx, hourContentType, hourFields(hour, locale))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"date":       hour.Date,
			"error":      err.Error(),
		}).Error("Failed to create irregular hour entry")
		return nil, hours.ErrCreateHour
	}

	entry, err = s.cmsClient.PublishEntry(ctx, entry)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         entry.Sys.ID,
			"error":      err.Error(),
		}).Error("Failed to publish created irregular hour entry")
		return nil, hours.ErrCreateHour
	}

	created := hourFromEntry(entry, locale)
	return &created, nil
}

func (s *hoursService) UpdateIrregularHour(ctx context.Context, id string, req hours.SaveIrregularHourRequest) (*entity.IrregularHour, error) {
	requestID := contextPkg.GetRequestID(ctx)

	entry, err := s.cmsClient.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Irregular hour entry not found for update")
			return nil, hours.ErrHourNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to fetch irregular hour entry for update")
		return nil, hours.ErrUpdateHour
	}

	hour := entity.IrregularHour{
		ID:        id,
		Date:      req.Date,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		IsClosed:  req.IsClosed,
		Notes:     req.Notes,
	}

	locale := s.cmsClient.Locale()

	if entry.Fields == nil {
		entry.Fields = cms.Fields{}
	}
	for name, value := range hourFields(hour, locale) {
		entry.Fields[name] = value
	}

	updated, err := s.cmsClient.UpdateEntry(ctx, entry)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update irregular hour entry")
		return nil, hours.ErrUpdateHour
	}

	// Every mutation is published immediately, even when the entry was
	// already live, so the site reflects the new version.
	updated, err = s.cmsClient.PublishEntry(ctx, updated)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to publish updated irregular hour entry")
		return nil, hours.ErrUpdateHour
	}

	result := hourFromEntry(updated, locale)
	return &result, nil
}

// DeleteIrregularHour runs the unpublish-then-delete sequence. A missing
// entry is treated as already deleted.
func (s *hoursService) DeleteIrregularHour(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	entry, err := s.cmsClient.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Irregular hour entry already gone")
			return nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to fetch irregular hour entry for delete")
		return hours.ErrDeleteHour
	}

	if entry.IsPublished() {
		entry, err = s.cmsClient.UnpublishEntry(ctx, entry)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to unpublish irregular hour entry")
			return hours.ErrDeleteHour
		}
	}

	if err := s.cmsClient.DeleteEntry(ctx, entry); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete irregular hour entry")
		return hours.ErrDeleteHour
	}

	return nil
}
