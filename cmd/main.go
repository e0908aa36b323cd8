package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/brigadly/backend/internal/app"
	"github.com/brigadly/backend/internal/config"
	"github.com/brigadly/backend/internal/controllers"
	"github.com/brigadly/backend/internal/middleware"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/routes"
	"github.com/brigadly/backend/internal/services"
	"github.com/brigadly/backend/internal/utils"
)

const appName = "staffing-engine"

func main() {
	utils.InitLogger(appName)
	cfg := config.LoadConfig(appName)

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize staffing engine:", err)
	}
	defer application.Close()

	shiftRepo := repositories.NewShiftRepository(application.DB)
	workerRepo := repositories.NewWorkerRepository(application.DB)
	appRepo := repositories.NewApplicationRepository(application.DB)
	contractRepo := repositories.NewContractRepository(application.DB)
	relRepo := repositories.NewRelationRepository(application.DB)
	collabRepo := repositories.NewCollabRepository(application.DB)
	companyRepo := repositories.NewCompanyRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedAllTestData(
			context.Background(),
			companyRepo,
			workerRepo,
			shiftRepo,
			relRepo,
			collabRepo,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
		utils.Logger.Info("Seeded test data successfully")
	}

	twClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	sgClient := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	notifier := services.NewDispatchNotifier(
		workerRepo,
		twClient,
		sgClient,
		cfg.LDFlag_TwilioFromPhone,
		cfg.LDFlag_SendgridFromEmail,
		cfg.OrganizationName,
		cfg.LDFlag_SendgridSandboxMode,
	)

	waveCfg := services.DefaultWaveConfig()

	feedService := services.NewShiftFeedService(shiftRepo, workerRepo, appRepo, relRepo, companyRepo, waveCfg)
	contractService := services.NewContractService(contractRepo, appRepo, shiftRepo, companyRepo, notifier)
	appService := services.NewApplicationService(appRepo, shiftRepo, workerRepo, relRepo, feedService, contractService, notifier)
	shiftService := services.NewShiftService(shiftRepo, companyRepo, appService)
	collabService := services.NewCollabSchedulerService(relRepo, collabRepo, companyRepo, workerRepo, shiftRepo, appService, waveCfg)
	companyService := services.NewCompanyService(companyRepo, relRepo, collabRepo, workerRepo)
	maintenance := services.NewShiftMaintenanceService(shiftRepo)

	healthController := controllers.NewHealthController(application)
	shiftsController := controllers.NewShiftsController(feedService)
	applicationsController := controllers.NewApplicationsController(appService, collabService)
	contractsController := controllers.NewContractsController(contractService)
	companyShiftsController := controllers.NewCompanyShiftsController(shiftService)
	companyAppsController := controllers.NewCompanyApplicationsController(appService)
	companyCollabController := controllers.NewCompanyCollabController(companyService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Worker endpoints
	worker := router.NewRoute().Subrouter()
	worker.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, middleware.RoleWorker))

	worker.HandleFunc(routes.ShiftsFeed, shiftsController.FeedHandler).Methods(http.MethodGet)
	worker.HandleFunc(routes.ShiftsDetail, shiftsController.DetailHandler).Methods(http.MethodGet)
	worker.HandleFunc(routes.ApplicationsApply, applicationsController.ApplyHandler).Methods(http.MethodPost)
	worker.HandleFunc(routes.ApplicationsMy, applicationsController.ListMyHandler).Methods(http.MethodGet)
	worker.HandleFunc(routes.ApplicationsCancel, applicationsController.CancelHandler).Methods(http.MethodPost)
	worker.HandleFunc(routes.ApplicationsBulkApply, applicationsController.BulkApplyHandler).Methods(http.MethodPost)
	worker.HandleFunc(routes.ContractsWorkerGet, contractsController.WorkerGetHandler).Methods(http.MethodGet)
	worker.HandleFunc(routes.ContractsWorkerSign, contractsController.WorkerSignHandler).Methods(http.MethodPost)

	// Company endpoints
	company := router.NewRoute().Subrouter()
	company.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, middleware.RoleCompany))

	company.HandleFunc(routes.CompanyShiftsCreate, companyShiftsController.CreateHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyShiftsList, companyShiftsController.ListHandler).Methods(http.MethodGet)
	company.HandleFunc(routes.CompanyShiftsSlots, companyShiftsController.UpdateSlotsHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyShiftsPromoteWave, companyShiftsController.PromoteWaveHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyShiftsClose, companyShiftsController.CloseHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyShiftsCancel, companyShiftsController.CancelHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyApplicationsList, companyAppsController.ListForShiftHandler).Methods(http.MethodGet)
	company.HandleFunc(routes.CompanyShiftsGet, companyShiftsController.GetHandler).Methods(http.MethodGet)
	company.HandleFunc(routes.CompanyApplicationsConfirm, companyAppsController.ConfirmHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyApplicationsReject, companyAppsController.RejectHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyApplicationsCancel, companyAppsController.CancelHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyApplicationsWorked, companyAppsController.ConfirmWorkedHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyContractsGet, contractsController.CompanyGetHandler).Methods(http.MethodGet)
	company.HandleFunc(routes.CompanyContractsSign, contractsController.CompanySignHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyRelationsUpsert, companyCollabController.UpsertRelationHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanyGroupsCreate, companyCollabController.CreateGroupHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanySchemesCreate, companyCollabController.CreateSchemeHandler).Methods(http.MethodPost)
	company.HandleFunc(routes.CompanySchemesList, companyCollabController.ListSchemesHandler).Methods(http.MethodGet)

	c := cron.New()
	_, sweepErr := c.AddFunc("@every 5m", func() {
		maintenance.CloseStartedShifts(context.Background())
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule shift close sweep")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("staffing engine failed to start:", err)
	}
}
