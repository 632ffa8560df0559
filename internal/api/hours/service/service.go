package hoursService

import (
	"context"

	"AtelierAdmin/internal/api/hours"
	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"

	"github.com/sirupsen/logrus"
)

type IHoursService interface {
	GetAllIrregularHours(ctx context.Context) (*hours.IrregularHourListResponse, error)
	CreateIrregularHour(ctx context.Context, req hours.SaveIrregularHourRequest) (*entity.IrregularHour, error)
	UpdateIrregularHour(ctx context.Context, id string, req hours.SaveIrregularHourRequest) (*entity.IrregularHour, error)
	DeleteIrregularHour(ctx context.Context, id string) error
}

type hoursService struct {
	log       *logrus.Logger
	cmsClient cms.ItfCMS
}

func NewHoursService(log *logrus.Logger, cmsClient cms.ItfCMS) IHoursService {
	return &hoursService{
		log:       log,
		cmsClient: cmsClient,
	}
}
