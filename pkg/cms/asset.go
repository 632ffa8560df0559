package cms

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryPolicy bounds the wait for asset processing. When the budget is
// spent the workflow proceeds with whatever state the asset is in instead
// of failing the upload.
type RetryPolicy struct {
	Interval    time.Duration
	MaxAttempts int
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Interval:    time.Second,
		MaxAttempts: 5,
	}
}

type AssetUploader struct {
	cmsClient ItfCMS
	log       *logrus.Logger
	policy    RetryPolicy
}

func NewAssetUploader(cmsClient ItfCMS, log *logrus.Logger, policy RetryPolicy) *AssetUploader {
	return &AssetUploader{
		cmsClient: cmsClient,
		log:       log,
		policy:    policy,
	}
}

// UploadImage runs the full asset workflow: raw upload, asset creation,
// processing, bounded wait for the processed URL, publish. It returns the
// asset id for linking into an entry. Errors before the polling stage
// propagate to the caller; an exhausted poll budget does not.
func (u *AssetUploader) UploadImage(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	uploadID, err := u.cmsClient.UploadBinary(ctx, body)
	if err != nil {
		u.log.WithFields(logrus.Fields{
			"file_name": fileName,
			"error":     err.Error(),
		}).Error("Failed to upload raw file")
		return "", err
	}

	locale := u.cmsClient.Locale()

	asset, err := u.cmsClient.CreateAsset(ctx, AssetFields{
		Title: map[string]string{locale: fileName},
		File: map[string]AssetFile{
			locale: {
				FileName:    fileName,
				ContentType: contentType,
				UploadFrom: &Link{Sys: LinkSys{
					Type:     "Link",
					LinkType: "Upload",
					ID:       uploadID,
				}},
			},
		},
	})
	if err != nil {
		u.log.WithFields(logrus.Fields{
			"file_name": fileName,
			"upload_id": uploadID,
			"error":     err.Error(),
		}).Error("Failed to create asset")
		return "", err
	}

	if err := u.cmsClient.ProcessAsset(ctx, asset); err != nil {
		u.log.WithFields(logrus.Fields{
			"asset_id": asset.Sys.ID,
			"error":    err.Error(),
		}).Error("Failed to request asset processing")
		return "", err
	}

	for attempt := 1; attempt <= u.policy.MaxAttempts; attempt++ {
		fetched, err := u.cmsClient.GetAsset(ctx, asset.Sys.ID)
		if err != nil {
			u.log.WithFields(logrus.Fields{
				"asset_id": asset.Sys.ID,
				"attempt":  attempt,
				"error":    err.Error(),
			}).Warn("Failed to fetch asset while polling")
		} else {
			asset = fetched
			if asset.FileURL(locale) != "" {
				break
			}
		}

		if attempt == u.policy.MaxAttempts {
			u.log.WithFields(logrus.Fields{
				"asset_id": asset.Sys.ID,
				"attempts": attempt,
			}).Warn("Asset still processing after retry budget, publishing anyway")
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(u.policy.Interval):
		}
	}

	published, err := u.cmsClient.PublishAsset(ctx, asset)
	if err != nil {
		u.log.WithFields(logrus.Fields{
			"asset_id": asset.Sys.ID,
			"error":    err.Error(),
		}).Error("Failed to publish asset")
		return "", err
	}

	return published.Sys.ID, nil
}
