package hoursHandler

import (
	hoursService "AtelierAdmin/internal/api/hours/service"
	"AtelierAdmin/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type HoursHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	hoursService hoursService.IHoursService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	hs hoursService.IHoursService,
) *HoursHandler {
	return &HoursHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		hoursService: hs,
	}
}

func (h *HoursHandler) Start(srv fiber.Router) {
	hours := srv.Group("/hours")

	hours.Get("", h.middleware.NewTokenMiddleware, h.GetAllIrregularHours)
	hours.Post("/", h.middleware.NewTokenMiddleware, h.CreateIrregularHour)
	hours.Put("/:id", h.middleware.NewTokenMiddleware, h.UpdateIrregularHour)
	hours.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteIrregularHour)
}
