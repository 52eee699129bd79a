package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifeflow/internal/config"
	"lifeflow/internal/notify"
	"lifeflow/internal/recurrence"
	"lifeflow/internal/repository"
	"lifeflow/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	recurringRepo := repository.NewRecurringRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	expander := recurrence.NewExpander(cfg.Recurrence)
	recurringSvc := service.NewRecurringService(recurringRepo, taskRepo, expander)
	statusSvc := service.NewStatusService(taskRepo)
	statsSvc := service.NewStatsService(taskRepo, categoryRepo, settingsRepo)

	// Catch up instances that came due while the daemon was down, and flag
	// any template/instance drift before the day's edits pile on top.
	if _, err := statusSvc.Sweep(ctx, time.Now()); err != nil {
		log.Printf("startup sweep: %v", err)
	}
	if _, err := recurringSvc.CheckConsistency(ctx); err != nil {
		log.Printf("consistency check: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := statusSvc.Sweep(jobCtx, time.Now()); err != nil {
			log.Printf("sweep: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule sweep: %v", err)
	}

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("notifier: %v", err)
		}
		if _, err := scheduler.ScheduleDaily(cfg.ReportTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			report, err := statsSvc.WeeklySummary(jobCtx, time.Now())
			if err != nil {
				log.Printf("weekly summary: %v", err)
				return
			}
			if err := notifier.SendWeeklyReport(report); err != nil {
				log.Printf("report: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule report: %v", err)
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	log.Println("LifeFlow daemon started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
