// Package app monta a aplicação completa (banco, serviços e rotas) a partir da configuração.
// É compartilhado pelo servidor HTTP e pelo entrypoint Lambda.
package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/pkg/errors"

	"cadastro/config"
	"cadastro/internal/api/auth"
	"cadastro/internal/api/person"
	"cadastro/internal/api/router"
	"cadastro/internal/domain"
	"cadastro/internal/pkg/cache"
	"cadastro/internal/pkg/database"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/pkg/middleware"
	"cadastro/internal/pkg/storage"
	"cadastro/internal/pkg/token"
	"cadastro/internal/repository/personrepo"
	"cadastro/internal/repository/userrepo"
	"cadastro/internal/service/authservice"
	"cadastro/internal/service/personservice"
	"cadastro/internal/service/syncservice"
)

// App agrupa o handler HTTP e os recursos que precisam ser liberados no fim.
type App struct {
	Handler http.Handler

	logger  logger.Logger
	db      *sql.DB
	syncSvc *syncservice.Service
	cache   cache.Client
}

// New prepara o snapshot local, abre o banco, aplica migrações e registra as rotas.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{logger: log}

	// 1. Snapshot do banco (S3 -> arquivo local) antes de abrir a conexão
	var pusher middleware.SnapshotPusher
	if cfg.SnapshotSyncEnabled {
		s3Client, err := storage.NewS3Client(ctx, storage.S3Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, errors.Wrap(err, "falha ao configurar o cliente S3")
		}

		a.syncSvc = syncservice.NewService(storage.NewS3Store(s3Client, cfg.S3Bucket), cfg.DatabasePath, cfg.DatabaseKey, log)
		if err := a.syncSvc.EnsureLocal(ctx); err != nil {
			return nil, err
		}
		pusher = a.syncSvc
	} else {
		log.Warn("Sincronização do snapshot desativada.", nil)
	}

	// 2. Banco de Dados (SQLite) + migrações
	db, err := database.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao abrir o banco de dados")
	}
	a.db = db

	if err := database.Migrate(ctx, db); err != nil {
		a.Close()
		return nil, errors.Wrap(err, "falha ao aplicar migrações")
	}
	if a.syncSvc != nil {
		a.syncSvc.AttachDB(db)
	}
	log.Info("Banco SQLite pronto.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	personRepo := personrepo.NewPersonRepository(db, cfg.DBTimeout, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	authSvc := authservice.NewService(userRepo, tokenSvc, log)
	if err := authSvc.SeedDefaultUsers(ctx); err != nil {
		a.Close()
		return nil, errors.Wrap(err, "falha ao criar usuários padrão")
	}

	personV1 := personservice.NewService(personRepo, domain.PolicyV1, log)
	personV2 := personservice.NewService(personRepo, domain.PolicyV2, log)

	// 4. Rate limiting opcional (Redis)
	var rateLimit router.Middleware
	if cfg.RedisAddr != "" {
		cacheClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			a.Close()
			return nil, errors.Wrap(err, "falha ao conectar ao Redis")
		}
		a.cache = cacheClient
		rateLimit = middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)
		log.Info("Rate limiting ativo.", map[string]interface{}{"max_requests": cfg.RateLimitMaxRequests})
	}

	a.Handler = router.NewRouter(router.Deps{
		AuthHandler: auth.NewHandler(authSvc, log),
		PersonV1:    person.NewHandler(personV1, log),
		PersonV2:    person.NewHandler(personV2, log),
		Auth:        middleware.NewAuthMiddleware(tokenSvc, authSvc, log),
		Pusher:      pusher,
		RateLimit:   rateLimit,
		Logger:      log,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	return a, nil
}

// WaitForSnapshots aguarda os envios de snapshot em andamento. Sem sincronização, retorna na hora.
func (a *App) WaitForSnapshots(ctx context.Context) error {
	if a.syncSvc == nil {
		return nil
	}
	return a.syncSvc.Wait(ctx)
}

// Close libera Redis e banco.
func (a *App) Close() error {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("Falha ao fechar o cliente Redis.", err)
		}
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
