package hoursService

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"AtelierAdmin/internal/api/hours"
	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLocale = "en-US"

type fakeCMS struct {
	entry *cms.Entry
	list  []cms.Entry

	getErr    error
	queryErr  error
	createErr error
	deleteErr error

	publishCalls   int
	unpublishCalls int
	deleteCalls    int
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
	return &cms.Entry{Sys: cms.Sys{ID: "created-hour", Version: 1}, Fields: fields}, nil
}

func (f *fakeCMS) UpdateEntry(ctx context.Context, entry *cms.Entry) (*cms.Entry, error) {
	cp := *entry
	cp.Sys.Version++
	return &cp, nil
}

func (f *fakeCMS) PublishEntry(ctx context.Context, entry *cms.Entry) (*cms.Entry, error) {
	f.publishCalls++
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
	return "", errors.New("not supported")
}

func (f *fakeCMS) CreateAsset(ctx context.Context, fields cms.AssetFields) (*cms.Asset, error) {
	return nil, errors.New("not supported")
}

func (f *fakeCMS) GetAsset(ctx context.Context, id string) (*cms.Asset, error) {
	return nil, errors.New("not supported")
}

func (f *fakeCMS) ProcessAsset(ctx context.Context, asset *cms.Asset) error {
	return errors.New("not supported")
}

func (f *fakeCMS) PublishAsset(ctx context.Context, asset *cms.Asset) (*cms.Asset, error) {
	return nil, errors.New("not supported")
}

func newTestService(fake *fakeCMS) IHoursService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHoursService(logger, fake)
}

func hourEntry(id, date string) cms.Entry {
	return cms.Entry{
		Sys: cms.Sys{ID: id, Version: 1, PublishedAt: "2024-01-01T00:00:00Z"},
		Fields: cms.Fields{
			"openingTime": cms.Localized(testLocale, date+"T00:00:00Z"),
			"openTime":    cms.Localized(testLocale, "10:00"),
			"closeTime":   cms.Localized(testLocale, "15:00"),
			"isClosed":    cms.Localized(testLocale, false),
			"notes":       cms.Localized(testLocale, ""),
		},
	}
}

func TestGetAllIrregularHoursFiltersPastDates(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	fake := &fakeCMS{list: []cms.Entry{
		hourEntry("past", "2024-01-01"),
		hourEntry("today", today),
		hourEntry("future", "2099-01-01"),
	}}
	svc := newTestService(fake)

	result, err := svc.GetAllIrregularHours(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "today", result.Hours[0].ID)
	assert.Equal(t, today, result.Hours[0].Date)
	assert.Equal(t, "future", result.Hours[1].ID)
	assert.Equal(t, "2099-01-01", result.Hours[1].Date)
}

func TestGetAllIrregularHoursQueryFailure(t *testing.T) {
	fake := &fakeCMS{queryErr: errors.New("upstream down")}
	svc := newTestService(fake)

	_, err := svc.GetAllIrregularHours(context.Background())

	assert.ErrorIs(t, err, hours.ErrLoadHours)
}

func TestCreateIrregularHourAlwaysPublishes(t *testing.T) {
	fake := &fakeCMS{}
	svc := newTestService(fake)

	hour, err := svc.CreateIrregularHour(context.Background(), hours.SaveIrregularHourRequest{
		Date:     "2099-06-01",
		OpenTime: "11:00", CloseTime: "16:00",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fake.publishCalls)
	assert.Equal(t, "created-hour", hour.ID)
	assert.Equal(t, "2099-06-01", hour.Date)
}

func TestUpdateIrregularHourRepublishesLiveEntry(t *testing.T) {
	entry := hourEntry("h1", "2099-06-01")
	fake := &fakeCMS{entry: &entry}
	svc := newTestService(fake)

	hour, err := svc.UpdateIrregularHour(context.Background(), "h1", hours.SaveIrregularHourRequest{
		Date: "2099-06-02", IsClosed: true, Notes: "holiday",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fake.publishCalls)
	assert.Equal(t, "2099-06-02", hour.Date)
	assert.True(t, hour.IsClosed)
	assert.Equal(t, "", hour.OpenTime)
	assert.Equal(t, "", hour.CloseTime)
}

func TestUpdateIrregularHourNotFound(t *testing.T) {
	fake := &fakeCMS{getErr: cms.ErrNotFound}
	svc := newTestService(fake)

	_, err := svc.UpdateIrregularHour(context.Background(), "missing", hours.SaveIrregularHourRequest{
		Date: "2099-06-01",
	})

	assert.ErrorIs(t, err, hours.ErrHourNotFound)
}

func TestDeleteIrregularHourMissingIsNoOp(t *testing.T) {
	fake := &fakeCMS{getErr: cms.ErrNotFound}
	svc := newTestService(fake)

	err := svc.DeleteIrregularHour(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Equal(t, 0, fake.deleteCalls)
}

func TestDeleteIrregularHourUnpublishesFirst(t *testing.T) {
	entry := hourEntry("h1", "2099-06-01")
	fake := &fakeCMS{entry: &entry}
	svc := newTestService(fake)

	err := svc.DeleteIrregularHour(context.Background(), "h1")

	assert.NoError(t, err)
	assert.Equal(t, 1, fake.unpublishCalls)
	assert.Equal(t, 1, fake.deleteCalls)
}

func TestDeleteIrregularHourDeleteFailure(t *testing.T) {
	entry := hourEntry("h1", "2099-06-01")
	fake := &fakeCMS{entry: &entry, deleteErr: errors.New("conflict")}
	svc := newTestService(fake)

	err := svc.DeleteIrregularHour(context.Background(), "h1")

	assert.ErrorIs(t, err, hours.ErrDeleteHour)
}

func TestHourFieldsRoundTrip(t *testing.T) {
	hour := entity.IrregularHour{
		ID:        "h1",
		Date:      "2099-06-01",
		OpenTime:  "10:00",
		CloseTime: "15:00",
		IsClosed:  false,
		Notes:     "short staffed",
	}

	entry := &cms.Entry{
		Sys:    cms.Sys{ID: "h1"},
		Fields: hourFields(hour, testLocale),
	}

	assert.Equal(t, hour, hourFromEntry(entry, testLocale))
}

func TestHourFieldsClearsTimesWhenClosed(t *testing.T) {
	fields := hourFields(entity.IrregularHour{
		Date: "2099-06-01", OpenTime: "10:00", CloseTime: "15:00", IsClosed: true,
	}, testLocale)

	assert.Equal(t, cms.Localized(testLocale, ""), fields["openTime"])
	assert.Equal(t, cms.Localized(testLocale, ""), fields["closeTime"])
	assert.Equal(t, cms.Localized(testLocale, true), fields["isClosed"])
}
