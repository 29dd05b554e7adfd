package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	api "github.com/The-Gleb/advertisement_form/internal/adapter/api/graphql"
	cache "github.com/The-Gleb/advertisement_form/internal/adapter/cache/redis"
	db "github.com/The-Gleb/advertisement_form/internal/adapter/db/postgres"
	"github.com/The-Gleb/advertisement_form/internal/adapter/i18n"
	"github.com/The-Gleb/advertisement_form/internal/config"
	v1 "github.com/The-Gleb/advertisement_form/internal/controller/http/v1/server"
	"github.com/The-Gleb/advertisement_form/internal/domain/service"
	"github.com/The-Gleb/advertisement_form/internal/domain/usecase"
	"github.com/The-Gleb/advertisement_form/internal/logger"
	"github.com/The-Gleb/advertisement_form/internal/metrics"
	"github.com/The-Gleb/advertisement_form/pkg/client/postgresql"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	configFile := os.Getenv("CONFIG_FILE")
	cfg := config.MustBuild(configFile)

	logger.Initialize(cfg.LogLevel)
	slog.Info("config is built", "run_address", cfg.RunAddress, "graphql_url", cfg.GraphQL.URL, "location", cfg.Forms.Location)

	location, err := time.LoadLocation(cfg.Forms.Location)
	if err != nil {
		return fmt.Errorf("invalid forms location: %w", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", cfg.DB.Username, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.DbName)
	postgresClient, err := postgresql.NewClient(ctx, dsn)
	if err != nil {
		return err
	}
	defer postgresClient.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: "",
		DB:       0,
	})
	defer redisClient.Close()

	err = db.RunMigrations(dsn)
	if err != nil {
		return err
	}

	translations, err := i18n.NewTranslations(cfg.Forms.Language)
	if err != nil {
		return err
	}

	advertisementClient := api.NewAdvertisementClient(cfg.GraphQL.URL, cfg.GraphQL.Token, cfg.GraphQL.Timeout)
	advertisementCache := cache.NewRedisCache(redisClient, cfg.CacheExpiry)
	tokenStorage := db.NewTokenStorage(postgresClient)
	submissionStorage := db.NewSubmissionStorage(postgresClient)
	appMetrics := metrics.New()

	err = advertisementCache.Subscribe(ctx, func(e cache.Event) {
		slog.Debug("advertisements invalidated", "type", e.Type, "payload", e.Payload)
	})
	if err != nil {
		slog.Warn("listening for invalidation events is disabled", "error", err)
	}

	advertisementService := service.NewAdvertisementService(advertisementClient, advertisementCache)
	formService := service.NewFormService(advertisementClient, advertisementService, translations, location)
	tokenService := service.NewTokenService(tokenStorage)

	updateDraftUsecase := usecase.NewUpdateDraftUsecase(formService)

	s, err := v1.NewServer(
		cfg.RunAddress,
		v1.Usecases{
			CreateForm:        usecase.NewCreateFormUsecase(formService),
			GetForm:           usecase.NewGetFormUsecase(formService),
			ChangeDialog:      usecase.NewChangeDialogUsecase(formService),
			UpdateDraft:       updateDraftUsecase,
			Media:             updateDraftUsecase,
			SubmitForm:        usecase.NewSubmitFormUsecase(formService, submissionStorage, appMetrics),
			DisposeForm:       usecase.NewDisposeFormUsecase(formService),
			GetAdvertisements: usecase.NewGetAdvertisementsUsecase(advertisementService),
			GetSubmissions:    usecase.NewGetSubmissionsUsecase(submissionStorage),
			CheckToken:        usecase.NewCheckTokenUsecase(tokenService),
		},
		appMetrics.Handler(),
	)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(cfg.Forms.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				swept := formService.Sweep(cfg.Forms.IdleTTL)
				appMetrics.ObserveSweep(swept, formService.Count())
				if swept > 0 {
					slog.Info("idle forms swept", "count", swept)
				}
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		<-ctx.Done()

		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Stop(ctxShutdown)
		if err != nil {
			slog.Error("error shutting down server", "error", err)
			return
		}
		slog.Info("server was successfuly shutdown")
	}()

	slog.Info("starting server", "address", cfg.RunAddress)
	if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		cancel()
	}

	wg.Wait()

	return nil
}
