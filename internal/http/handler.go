package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dkenzh/buildops/internal/service"
)

type Handler struct {
	auth       *service.AuthService
	companies  *service.CompanyService
	projects   *service.ProjectService
	finances   *service.FinanceService
	categories *service.CategoryService
	resources  *service.ResourceService
	attendance *service.AttendanceService
	materials  *service.MaterialService
	excel      ExcelGenerator
	pdf        PDFGenerator
	log        zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	companies *service.CompanyService,
	projects *service.ProjectService,
	finances *service.FinanceService,
	categories *service.CategoryService,
	resources *service.ResourceService,
	attendance *service.AttendanceService,
	materials *service.MaterialService,
	excel ExcelGenerator,
	pdf PDFGenerator,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:       auth,
		companies:  companies,
		projects:   projects,
		finances:   finances,
		categories: categories,
		resources:  resources,
		attendance: attendance,
		materials:  materials,
		excel:      excel,
		pdf:        pdf,
		log:        log,
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		respondError(c, 400, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDQuery(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, 400, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, true
	}
	parsed, err := parseDate(raw)
	if err != nil {
		respondError(c, 400, "invalid "+name)
		return time.Time{}, false
	}
	return parsed, true
}
