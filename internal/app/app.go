package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/akarpov/coopledger/internal/allocator"
	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/config"
	"github.com/akarpov/coopledger/internal/handlers"
	"github.com/akarpov/coopledger/internal/pg"
	"github.com/akarpov/coopledger/internal/repo"
	"github.com/akarpov/coopledger/internal/service"
	"github.com/akarpov/coopledger/pkg/auth"
	"github.com/akarpov/coopledger/pkg/clients"
	"github.com/akarpov/coopledger/pkg/logger"
)

// flatWeight is the uniform voting weight handed out while no external
// reputation system is wired in.
const flatWeight = 100

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	bg   *allocator.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	auth.SetSecret(cfg.JWTSecret)

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn)

	vault := capability.NewHTTPVaultClient(clients.NewHTTPClient(), func(ctx context.Context, operatorID int) (string, error) {
		op, err := a.repo.OperatorRepo.FindByID(ctx, operatorID)
		if err != nil {
			return "", err
		}
		if op == nil {
			return "", errors.New("operator not found")
		}
		return op.Endpoint, nil
	})

	a.srv = service.New(a.repo, txManager, service.Capabilities{
		WeightSource: capability.NewFlatWeightSource(flatWeight),
		Privacy:      capability.DisabledPrivacyBackend{},
		Documents:    capability.NullDocumentRegistry{},
		Vault:        vault,
	})
	a.api = handlers.New(a.srv, a.repo.TreasuryRepo)
	a.bg = allocator.New(cfg, a.srv.AllocService, a.repo.PolicyRepo)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startAllocator(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startAllocator(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.bg.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
