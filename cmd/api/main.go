package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	billingHandler "github.com/clinicore/records-api/internal/handler/billing"
	catalogHandler "github.com/clinicore/records-api/internal/handler/catalog"
	clinicHandler "github.com/clinicore/records-api/internal/handler/clinic"
	directoryHandler "github.com/clinicore/records-api/internal/handler/directory"
	patientHandler "github.com/clinicore/records-api/internal/handler/patient"
	recordsHandler "github.com/clinicore/records-api/internal/handler/records"
	schedulingHandler "github.com/clinicore/records-api/internal/handler/scheduling"

	"github.com/clinicore/records-api/internal/config"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/internal/repository/memory"
	"github.com/clinicore/records-api/internal/repository/postgres"
	"github.com/clinicore/records-api/internal/router"
	billingService "github.com/clinicore/records-api/internal/service/billing"
	catalogService "github.com/clinicore/records-api/internal/service/catalog"
	clinicService "github.com/clinicore/records-api/internal/service/clinic"
	directoryService "github.com/clinicore/records-api/internal/service/directory"
	eventService "github.com/clinicore/records-api/internal/service/event"
	patientService "github.com/clinicore/records-api/internal/service/patient"
	recordsService "github.com/clinicore/records-api/internal/service/records"
	schedulingService "github.com/clinicore/records-api/internal/service/scheduling"
	"github.com/clinicore/records-api/pkg/logger"
)

type repositories struct {
	clinics        repository.ClinicRepository
	specialties    repository.SpecialtyRepository
	doctors        repository.DoctorRepository
	patients       repository.PatientRepository
	services       repository.ServiceRepository
	appointments   repository.AppointmentRepository
	payments       repository.PaymentRepository
	prescriptions  repository.PrescriptionRepository
	medicalRecords repository.MedicalRecordRepository
	outbox         repository.OutboxRepository
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer cleanup()

	eventSvc := eventService.NewService(repos.outbox, log)

	clinicSvc := clinicService.NewService(repos.clinics, eventSvc, log)
	directorySvc := directoryService.NewService(repos.doctors, repos.specialties, eventSvc, log)
	patientSvc := patientService.NewService(repos.patients, eventSvc, log)
	catalogSvc := catalogService.NewService(repos.services, eventSvc, log)
	schedulingSvc := schedulingService.NewService(repos.appointments, eventSvc,
		time.Duration(cfg.Store.CacheTTLSeconds)*time.Second, log)
	billingSvc := billingService.NewService(repos.payments, eventSvc, log)
	recordsSvc := recordsService.NewService(repos.prescriptions, repos.medicalRecords, eventSvc, log)

	r := router.New(log, router.Config{
		RateLimit: rate.Limit(cfg.Server.RateLimitRPS),
		RateBurst: cfg.Server.RateLimitBurst,
	},
		clinicHandler.NewHandler(clinicSvc),
		directoryHandler.NewHandler(directorySvc),
		patientHandler.NewHandler(patientSvc),
		catalogHandler.NewHandler(catalogSvc),
		schedulingHandler.NewHandler(schedulingSvc),
		billingHandler.NewHandler(billingSvc),
		recordsHandler.NewHandler(recordsSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("backend", cfg.Store.Backend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func buildRepositories(cfg *config.Config) (*repositories, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return &repositories{
			clinics:        postgres.NewClinicRepository(db),
			specialties:    postgres.NewSpecialtyRepository(db),
			doctors:        postgres.NewDoctorRepository(db),
			patients:       postgres.NewPatientRepository(db),
			services:       postgres.NewServiceRepository(db),
			appointments:   postgres.NewAppointmentRepository(db),
			payments:       postgres.NewPaymentRepository(db),
			prescriptions:  postgres.NewPrescriptionRepository(db),
			medicalRecords: postgres.NewMedicalRecordRepository(db),
			outbox:         postgres.NewOutboxRepository(db),
		}, func() { db.Close() }, nil

	case "memory", "":
		store := memory.NewStore()
		if cfg.Store.Seed {
			if err := memory.Seed(context.Background(), store); err != nil {
				return nil, nil, fmt.Errorf("failed to seed store: %w", err)
			}
		}
		return &repositories{
			clinics:        memory.NewClinicRepository(store),
			specialties:    memory.NewSpecialtyRepository(store),
			doctors:        memory.NewDoctorRepository(store),
			patients:       memory.NewPatientRepository(store),
			services:       memory.NewServiceRepository(store),
			appointments:   memory.NewAppointmentRepository(store),
			payments:       memory.NewPaymentRepository(store),
			prescriptions:  memory.NewPrescriptionRepository(store),
			medicalRecords: memory.NewMedicalRecordRepository(store),
			outbox:         memory.NewOutboxRepository(store),
		}, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
