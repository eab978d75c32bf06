package main

import (
	"agenda/cmd/internal/config"
	"agenda/cmd/internal/domain/database"
	"agenda/cmd/internal/domain/database/repository"
	"agenda/cmd/internal/integration/push"
	"agenda/cmd/internal/routes"
	"agenda/cmd/internal/service"
	"agenda/cmd/internal/utils/validators"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.GommonLevel())

	validate := validators.New()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorf("failed to close database: %v", err)
		}
	}()

	publicKey, privateKey := cfg.VapidPublicKey, cfg.VapidPrivateKey
	if publicKey == "" || privateKey == "" {
		publicKey, privateKey, err = push.GenerateKeys()
		if err != nil {
			log.Fatal("failed to generate VAPID keys", err)
		}
		log.Warnf("VAPID keys not configured, generated a temporary pair (public key %s)", publicKey)
	}

	// Getting repositories
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	subRepo := subscriptionRepository(cfg, db)

	// Push delivery
	sender := push.NewVapidSender(publicKey, privateKey, cfg.VapidSubject, cfg.PushTTL)
	queue := push.NewQueue(sender, subRepo, push.QueueConfig{
		Workers: cfg.PushWorkers,
		Size:    cfg.PushQueueSize,
	})

	// Getting services
	doctorService := service.NewDoctorService(doctorRepo, validate)
	patientService := service.NewPatientService(patientRepo, validate)
	apptService := service.NewAppointmentService(apptRepo, doctorRepo, patientRepo, subRepo, queue, validate)
	historyService := service.NewHistoryService(historyRepo, patientRepo, doctorRepo, validate)
	subService := service.NewSubscriptionService(subRepo, validate, sender.PublicKey())

	// Getting routes
	e := routes.NewServer(&routes.Routes{
		Appointments:  routes.NewAppointmentDefault(apptService),
		Doctors:       routes.NewDoctorDefault(doctorService),
		Patients:      routes.NewPatientDefault(patientService),
		History:       routes.NewHistoryDefault(historyService),
		Subscriptions: routes.NewSubscriptionDefault(subService),
		System:        routes.NewSystemDefault(func() error { return database.Ping(db) }),
	}, routes.ServerOptions{
		LoginRateLimit: cfg.LoginRateLimit,
		RequestLog:     true,
	})
	e.Logger.SetLevel(cfg.GommonLevel())

	go func() {
		err := e.Start(":" + cfg.Port)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("failed to shut down http server: %v", err)
	}

	// Let queued notifications go out before the process exits.
	queue.Close()
}

func subscriptionRepository(cfg *config.Config, db *gorm.DB) service.SubscriptionRepository {
	if cfg.SubscriptionStore == config.StoreDatabase {
		return repository.NewSubscriptionRepository(db)
	}
	return repository.NewMemorySubscriptionRepository()
}
