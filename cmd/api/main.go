package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/wellura/staff-scheduling-go/internal/config"
	appHTTP "github.com/wellura/staff-scheduling-go/internal/handler/http"
	"github.com/wellura/staff-scheduling-go/internal/pkg/calendarsync"
	"github.com/wellura/staff-scheduling-go/internal/pkg/cron"
	"github.com/wellura/staff-scheduling-go/internal/pkg/database"
	"github.com/wellura/staff-scheduling-go/internal/pkg/holiday"
	"github.com/wellura/staff-scheduling-go/internal/pkg/jwt"
	"github.com/wellura/staff-scheduling-go/internal/repository/postgresql"
	notificationService "github.com/wellura/staff-scheduling-go/internal/service/notification"
	optimizerService "github.com/wellura/staff-scheduling-go/internal/service/optimizer"
	scheduleService "github.com/wellura/staff-scheduling-go/internal/service/schedule"
	swapService "github.com/wellura/staff-scheduling-go/internal/service/swap"
	timeoffService "github.com/wellura/staff-scheduling-go/internal/service/timeoff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	staffRepo := postgresql.NewStaffRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	swapRepo := postgresql.NewSwapRequestRepository(db)
	timeOffRepo := postgresql.NewTimeOffRequestRepository(db)
	vacationBalanceRepo := postgresql.NewVacationBalanceRepository(db)

	holidays, err := holiday.NewStatic(cfg.Scheduling.PublicHolidays)
	if err != nil {
		log.Fatal("Invalid public holiday configuration: ", err)
	}

	notifier := notificationService.NewService(notificationService.Config{
		WebhookURL: cfg.Notification.WebhookURL,
	})
	defer notifier.Close()

	calendar := calendarsync.NewPublisher(cfg.CalendarSync.BaseURL)

	schedulesSvc := scheduleService.NewService(
		scheduleRepo,
		staffRepo,
		notifier,
		calendar,
		scheduleService.Config{
			GenerationHorizonDays: cfg.Scheduling.GenerationHorizonDays,
			MaxOccurrences:        cfg.Scheduling.MaxOccurrences,
		},
	)
	swapSvc := swapService.NewService(swapRepo, staffRepo, schedulesSvc, notifier)
	timeOffSvc := timeoffService.NewService(
		timeOffRepo,
		vacationBalanceRepo,
		staffRepo,
		holidays,
		notifier,
		timeoffService.Config{
			AnnualVacationDays: cfg.Scheduling.AnnualVacationDays,
		},
	)

	var strategy optimizerService.Strategy = optimizerService.NewLocalStrategy()
	if cfg.Optimizer.Enabled {
		strategy = optimizerService.NewFallbackStrategy(
			optimizerService.NewRemoteStrategy(cfg.Optimizer.BaseURL, cfg.Optimizer.Timeout),
			optimizerService.NewLocalStrategy(),
		)
	}
	optimizerSvc := optimizerService.NewService(staffRepo, timeOffRepo, schedulesSvc, strategy)

	scheduler := cron.NewScheduler()
	cron.NewGenerationJobs(schedulesSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	verifier := jwt.NewVerifier(cfg.JWT.Secret)

	router := appHTTP.NewRouter(
		verifier,
		appHTTP.NewScheduleHandler(schedulesSvc),
		appHTTP.NewSwapHandler(swapSvc),
		appHTTP.NewTimeOffHandler(timeOffSvc),
		appHTTP.NewOptimizerHandler(optimizerSvc),
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
