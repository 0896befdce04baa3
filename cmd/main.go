package main

import (
	"fmt"
	"log"

	"github.com/ejardin/internal/api"
	"github.com/ejardin/internal/auth"
	"github.com/ejardin/internal/config"
	"github.com/ejardin/internal/database"
	"github.com/ejardin/internal/mailer"
	"github.com/ejardin/internal/notify"
	"github.com/ejardin/internal/payment"
	"github.com/ejardin/internal/report"

	"github.com/robfig/cron/v3"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize database
	if err := database.Initialize(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()

	auth.SetSecret(cfg.Server.JWTSecret)

	// Mail transport is constructed once and shared
	m, err := mailer.New(mailer.Config{
		SMTPHost: cfg.Email.SMTPHost,
		SMTPPort: cfg.Email.SMTPPort,
		From:     cfg.Email.From,
		Password: cfg.Email.Password,
	})
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	slackNotifier := notify.NewSlackNotifier(cfg.Slack.Token, cfg.Slack.Channel)
	stripeClient := payment.NewClient(payment.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
	})

	generator := report.NewGenerator(db)
	runner := report.NewRunner(db, generator, m)

	// Poll for due report schedules on a fixed interval
	scheduler := cron.New()
	_, err = scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.Reports.PollInterval), func() {
		if err := runner.ProcessDue(); err != nil {
			log.Printf("Error processing due report schedules: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule report runner: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize and start API server
	server := api.NewServer(m, slackNotifier, stripeClient, runner, generator, cfg.Email.AdminEmail)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
