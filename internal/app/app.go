package app

import (
	"context"
	"fmt"
	"time"

	"docvault/internal/activity"
	"docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/domain/file"
	apphttp "docvault/internal/http"
	"docvault/internal/permission"
	"docvault/internal/repository"
	memoryrepo "docvault/internal/repository/memory"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	"docvault/internal/storage"
	badgerstore "docvault/internal/storage/badger"
	memorystore "docvault/internal/storage/memory"
	s3store "docvault/internal/storage/s3"
	"docvault/pkg/mailer"
)

const (
	errFailedLoadConfigFmt    = "failed to load config: %w"
	errFailedConnectDBFmt     = "failed to connect to database: %w"
	errFailedOpenBlobStoreFmt = "failed to open blob store: %w"
)

type repositories struct {
	users       repository.UserRepository
	projects    repository.ProjectRepository
	files       repository.FileRepository
	permissions repository.PermissionRepository
	shares      repository.ShareRepository
	activities  repository.ActivityRepository
}

// Service bundles the wired application: repositories, blob store,
// domain services and the HTTP server.
type Service struct {
	config *config.Config
	server *apphttp.Server

	db     *postgres.DB
	badger *badgerstore.Store
}

// InitializeService loads configuration and wires every dependency.
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf(errFailedLoadConfigFmt, err)
	}

	svc := &Service{config: cfg}

	repos, err := svc.buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	blobs, err := svc.buildBlobStore(cfg)
	if err != nil {
		return nil, err
	}

	activities := activity.NewLogger(repos.activities)
	perms := permission.NewStore(repos.permissions, repos.files)
	limits := file.NewLimitPolicy()
	if err := limits.SetGlobal(cfg.App.MaxUploadSize); err != nil {
		return nil, err
	}

	var mail mailer.Provider = mailer.NewNoopProvider()
	if cfg.Mailer.APIKey != "" {
		mail = mailer.NewHTTPProvider(mailer.HTTPConfig{
			APIKey: cfg.Mailer.APIKey,
			APIURL: cfg.Mailer.APIURL,
		})
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)

	fileService := service.NewFileService(repos.projects, repos.files, perms, blobs, limits, activities)
	projectService := service.NewProjectService(repos.projects, fileService, activities)
	shareService := service.NewShareService(
		repos.shares, repos.users, repos.files, perms, blobs, activities,
		mail, cfg.Mailer.From, cfg.App.ShareBaseURL,
	)
	authService := service.NewAuthService(repos.users, jwtService)

	svc.server = apphttp.NewServer(&apphttp.ServerDependencies{
		Config:         cfg,
		AuthService:    authService,
		ProjectService: projectService,
		FileService:    fileService,
		ShareService:   shareService,
		AuthMiddleware: auth.NewMiddleware(jwtService),
	})

	return svc, nil
}

func (s *Service) buildRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.Database.Backend == config.RepoBackendMemory {
		return &repositories{
			users:       memoryrepo.NewUserRepository(),
			projects:    memoryrepo.NewProjectRepository(),
			files:       memoryrepo.NewFileRepository(),
			permissions: memoryrepo.NewPermissionRepository(),
			shares:      memoryrepo.NewShareRepository(),
			activities:  memoryrepo.NewActivityRepository(),
		}, nil
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf(errFailedConnectDBFmt, err)
	}
	s.db = db

	return &repositories{
		users:       postgres.NewUserRepository(db),
		projects:    postgres.NewProjectRepository(db),
		files:       postgres.NewFileRepository(db),
		permissions: postgres.NewPermissionRepository(db),
		shares:      postgres.NewShareRepository(db),
		activities:  postgres.NewActivityRepository(db),
	}, nil
}

func (s *Service) buildBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendS3:
		return s3store.NewClient(&cfg.AWS)
	case config.StorageBackendBadger:
		store, err := badgerstore.Open(cfg.Storage.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf(errFailedOpenBlobStoreFmt, err)
		}
		s.badger = store
		return store, nil
	default:
		return memorystore.NewStore(), nil
	}
}

func (s *Service) Start() error {
	return s.server.Start(":" + s.config.Server.Port)
}

func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)

	if s.badger != nil {
		if closeErr := s.badger.Close(); err == nil {
			err = closeErr
		}
	}
	if s.db != nil {
		s.db.Close()
	}

	return err
}

// ShutdownGrace is how long in-flight requests get to finish.
func (s *Service) ShutdownGrace() time.Duration {
	return s.config.Server.ShutdownTimeout
}
