package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
	"github.com/ternarybob/linkfix/internal/handlers"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/services/auth"
	"github.com/ternarybob/linkfix/internal/services/fixer"
	"github.com/ternarybob/linkfix/internal/services/scanner"
	"github.com/ternarybob/linkfix/internal/services/session"
	"github.com/ternarybob/linkfix/internal/storage"
	badgerstore "github.com/ternarybob/linkfix/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Link services
	ScanService    *scanner.Service
	FixService     *fixer.Service
	SessionService *session.Service
	AuthService    *auth.Service

	// HTTP handlers
	SessionHandler  *handlers.SessionHandler
	ScanHandler     *handlers.ScanHandler
	FixHandler      *handlers.FixHandler
	ArticleHandler  *handlers.ArticleHandler
	RedirectHandler *handlers.RedirectHandler
	StatusHandler   *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Bool("redirects_enabled", cfg.Redirects.Enabled).
		Str("site_base_url", cfg.Site.BaseURL).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	ctx := context.Background()

	// Seed redirect rules and article fixtures from disk. Missing
	// directories are skipped; the store may also be populated via the API.
	if mgr, ok := storageManager.(*badgerstore.Manager); ok {
		if err := mgr.LoadRedirectsFromFiles(ctx, a.Config.Redirects.RulesDir); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to load redirects from files")
		}
		if err := mgr.LoadArticlesFromFiles(ctx, a.Config.Articles.FixturesDir); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to load articles from files")
		}
	}

	return nil
}

// initServices initializes all business services in dependency order
func (a *App) initServices() error {
	extractor := scanner.NewExtractor(a.Config.Site.QueryStrings, a.Logger)

	normalizer, err := scanner.NewNormalizer(a.Config.Site.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize normalizer: %w", err)
	}

	a.ScanService = scanner.NewService(
		a.StorageManager.ArticleStorage(),
		a.StorageManager.RedirectStorage(),
		extractor,
		normalizer,
		a.Logger,
	)
	a.Logger.Debug().Msg("Scan service initialized")

	a.SessionService = session.NewService(a.StorageManager.SessionStorage(), a.Logger)
	a.Logger.Debug().Msg("Session service initialized")

	a.FixService = fixer.NewService(
		a.StorageManager.ArticleStorage(),
		a.ScanService,
		a.SessionService,
		a.Logger,
	)
	a.Logger.Debug().Msg("Fix service initialized")

	a.AuthService = auth.NewService(a.Config, a.SessionService, a.Logger)
	a.Logger.Debug().Msg("Auth service initialized")

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.SessionHandler = handlers.NewSessionHandler(a.SessionService, a.AuthService, a.Logger)
	a.ScanHandler = handlers.NewScanHandler(a.ScanService, a.SessionService, a.AuthService, a.Logger)
	a.FixHandler = handlers.NewFixHandler(a.FixService, a.AuthService, a.Logger)
	a.ArticleHandler = handlers.NewArticleHandler(a.StorageManager.ArticleStorage(), a.ScanService, a.AuthService, a.Logger)
	a.RedirectHandler = handlers.NewRedirectHandler(a.StorageManager.RedirectStorage(), a.ScanService, a.AuthService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.Config, a.StorageManager.ArticleStorage(), a.StorageManager.RedirectStorage(), a.Logger)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}
	return nil
}
