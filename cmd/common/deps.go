// Package common provides shared dependency bootstrap for commands.
package common

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newsharvest/internal/assets"
	"github.com/jonesrussell/newsharvest/internal/config"
	"github.com/jonesrussell/newsharvest/internal/crawler"
	"github.com/jonesrussell/newsharvest/internal/database"
	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
	"github.com/jonesrussell/newsharvest/internal/sources/registry"
)

// Deps holds the dependencies shared by all commands.
type Deps struct {
	Config   *config.Config
	Logger   logger.Interface
	DB       *sqlx.DB
	Articles *database.ArticleRepository
	Registry *registry.Registry
	Crawler  *crawler.Crawler
}

// NewCommandDeps builds configuration, logging and the database
// connection every command needs.
func NewCommandDeps() (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = database.EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	if err = os.MkdirAll(cfg.Crawler.ImageDir, 0o755); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	client, err := fetch.New(fetch.Config{
		Proxy:     cfg.Crawler.Proxy,
		Retries:   cfg.Crawler.Retries,
		Wait:      cfg.Crawler.Wait,
		UserAgent: cfg.Crawler.UserAgent,
	}, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create fetch client: %w", err)
	}

	reg, err := registry.New(client, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build source registry: %w", err)
	}

	articles := database.NewArticleRepository(db)
	images := assets.NewDownloader(client, cfg.Crawler.ImageDir, log)

	c := crawler.New(articles, images, crawler.Config{
		Retries:        cfg.Crawler.Retries,
		Wait:           cfg.Crawler.Wait,
		LatestPages:    cfg.Crawler.LatestPages,
		ImageURLPrefix: cfg.Crawler.ImageURL,
	}, log)

	return &Deps{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Articles: articles,
		Registry: reg,
		Crawler:  c,
	}, nil
}

// Close releases held resources.
func (d *Deps) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
