package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-seeding"
	"github.com/insightventures/backoffice/backend/shared/go-utils"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/app"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/config"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/controllers"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/routes"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/services"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize backoffice-service:", err)
	}
	defer application.Close()

	propRepo := repositories.NewPropertyRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	projectRepo := repositories.NewProjectRepository(application.DB)
	reminderRepo := repositories.NewCustomReminderRepository(application.DB)
	eventRepo := repositories.NewCalendarEventRepository(application.DB)
	rentRollRepo := repositories.NewRentRollRepository(application.DB)
	inquiryRepo := repositories.NewInquiryRepository(application.DB)
	transactor := repositories.NewTransactor(application.DB)

	generationService := services.NewCalendarGenerationService(
		projectRepo,
		leaseRepo,
		propRepo,
		tenantRepo,
		reminderRepo,
		eventRepo,
		transactor,
	)
	calendarService := services.NewCalendarService(eventRepo)
	reminderService := services.NewReminderService(reminderRepo, eventRepo, transactor, generationService)
	rentRollService := services.NewRentRollService(rentRollRepo, propRepo, tenantRepo)
	financialsService := services.NewFinancialsService(leaseRepo, propRepo)
	mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.LDFlag_SendgridSandboxMode)
	inquiryService := services.NewInquiryService(cfg, inquiryRepo, mailer)

	if cfg.LDFlag_SeedDbWithTestData {
		repos := seeding.PortfolioRepos{
			Properties: propRepo,
			Tenants:    tenantRepo,
			Leases:     leaseRepo,
			Projects:   projectRepo,
			Reminders:  reminderRepo,
		}
		if err := app.SeedTestData(context.Background(), repos, generationService); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	healthController := controllers.NewHealthController(application.DB)
	calendarController := controllers.NewCalendarController(calendarService, generationService)
	remindersController := controllers.NewRemindersController(reminderService)
	rentRollController := controllers.NewRentRollController(rentRollService)
	financialsController := controllers.NewFinancialsController(financialsService)
	inquiryController := controllers.NewInquiryController(inquiryService)

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.CalendarEvents, calendarController.ListEventsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.CalendarEventsGenerate, calendarController.GenerateHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.CalendarEventDone, calendarController.SetDoneHandler).Methods(http.MethodPatch)
	router.HandleFunc(routes.CalendarEventByID, calendarController.DeleteHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.DashboardAlerts, calendarController.DashboardAlertsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Reminders, remindersController.SaveHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Reminders, remindersController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ReminderByID, remindersController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ReminderByID, remindersController.UpdateHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.ReminderByID, remindersController.DeleteHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.FinancialsCandlestick, financialsController.CandlestickHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.RentRollImport, rentRollController.ImportHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.RentRollImport, rentRollController.MonthlyTotalsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.GetInTouch, inquiryController.SubmitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.GetInTouch, inquiryController.ListHandler).Methods(http.MethodGet)

	c := cron.New()
	_, cronErr := c.AddFunc(cfg.LDFlag_CalendarRegenerationCron, func() {
		if e := generationService.GenerateAllCalendarEvents(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled calendar regeneration failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule calendar regeneration cron")
	}
	c.Start()
	defer c.Stop()

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
		utils.Logger.Fatal("backoffice-service failed to start:", err)
	}
}
