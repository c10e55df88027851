package main

import (
	"fmt"
	"os"

	"github.com/dkenzh/buildops/internal/auth"
	"github.com/dkenzh/buildops/internal/config"
	"github.com/dkenzh/buildops/internal/db"
	"github.com/dkenzh/buildops/internal/excel"
	httphandler "github.com/dkenzh/buildops/internal/http"
	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/logger"
	"github.com/dkenzh/buildops/internal/pdf"
	"github.com/dkenzh/buildops/internal/repository"
	"github.com/dkenzh/buildops/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	resourceRepo := repository.NewResourceRepository(database)
	attendanceRepo := repository.NewAttendanceRepository(database)
	materialRepo := repository.NewMaterialRepository(database)

	tokens := auth.NewTokenManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)

	authService := service.NewAuthService(userRepo, tokens)
	companyService := service.NewCompanyService(companyRepo, projectRepo)
	projectService := service.NewProjectService(projectRepo, companyRepo, transactionRepo, resourceRepo, log)
	financeService := service.NewFinanceService(transactionRepo, projectRepo, categoryRepo, materialRepo, cfg.Finance.Categories, log)
	categoryService := service.NewCategoryService(categoryRepo)
	resourceService := service.NewResourceService(resourceRepo, projectRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, resourceRepo)
	materialService := service.NewMaterialService(materialRepo, projectRepo, transactionRepo, log)

	handler := httphandler.NewHandler(
		authService,
		companyService,
		projectService,
		financeService,
		categoryService,
		resourceService,
		attendanceService,
		materialService,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		log,
	)

	authMiddleware := middleware.Auth(tokens)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting buildops service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
