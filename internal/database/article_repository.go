package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newsharvest/internal/domain"
)

// FilterColumns lists the article columns the read API may filter on.
// Anything else is rejected before it reaches SQL.
var FilterColumns = map[string]string{
	"nid":        "external_id",
	"title":      "title",
	"exchange":   "exchange",
	"lang":       "lang",
	"source_url": "source_url",
}

// ArticleRepository handles database operations for articles.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ExistsBySourceURL reports whether an article with the given canonical
// source URL is already stored.
func (r *ArticleRepository) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM articles WHERE source_url = $1)`

	if err := r.db.GetContext(ctx, &exists, query, sourceURL); err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}

	return exists, nil
}

// Insert stores a new article. Callers are expected to have checked
// ExistsBySourceURL first; the unique index on source_url rejects the
// losing side of a concurrent first-insert race.
func (r *ArticleRepository) Insert(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (external_id, title, sub_title, img, content, exchange, lang, source_url, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, inserted_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		article.ExternalID,
		article.Title,
		article.Subtitle,
		article.ImagePath,
		article.Content,
		article.Exchange,
		article.Language,
		article.SourceURL,
		article.CreatedAt,
	).Scan(&article.ID, &article.InsertedAt)

	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// List retrieves articles ordered newest first.
func (r *ArticleRepository) List(ctx context.Context, begin, limit int) ([]*domain.Article, error) {
	var articles []*domain.Article
	query := `
		SELECT id, external_id, title, sub_title, img, content, exchange, lang, source_url, created, inserted_at
		FROM articles
		ORDER BY created DESC
		LIMIT $1 OFFSET $2
	`

	if err := r.db.SelectContext(ctx, &articles, query, limit, begin); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	if articles == nil {
		articles = []*domain.Article{}
	}

	return articles, nil
}

// Count returns the total number of stored articles.
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(id) FROM articles`

	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}

// Filter retrieves articles matching one whitelisted column.
func (r *ArticleRepository) Filter(ctx context.Context, field, value string) ([]*domain.Article, error) {
	column, ok := FilterColumns[field]
	if !ok {
		return nil, fmt.Errorf("unsupported filter field: %q", field)
	}

	var articles []*domain.Article
	query := fmt.Sprintf(`
		SELECT id, external_id, title, sub_title, img, content, exchange, lang, source_url, created, inserted_at
		FROM articles
		WHERE %s = $1
		ORDER BY created DESC
	`, column)

	if err := r.db.SelectContext(ctx, &articles, query, value); err != nil {
		return nil, fmt.Errorf("failed to filter articles: %w", err)
	}

	if articles == nil {
		articles = []*domain.Article{}
	}

	return articles, nil
}

// ReadCursor returns the ingested-count cursor for index-offset sources,
// zero when no cursor row exists yet.
func (r *ArticleRepository) ReadCursor(ctx context.Context) (int, error) {
	var total int
	query := `SELECT COALESCE((SELECT total FROM crawl_cursor LIMIT 1), 0)`

	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("failed to read cursor: %w", err)
	}

	return total, nil
}

// WriteCursor persists the ingested-count cursor. Called once per
// completed batch, never mid-batch: a crash between batches re-processes
// the same window, which the exists check makes safe.
func (r *ArticleRepository) WriteCursor(ctx context.Context, total int) error {
	query := `UPDATE crawl_cursor SET total = $1`

	result, err := r.db.ExecContext(ctx, query, total)
	if err != nil {
		return fmt.Errorf("failed to write cursor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		if _, insertErr := r.db.ExecContext(ctx,
			`INSERT INTO crawl_cursor (total) VALUES ($1)`, total); insertErr != nil {
			return fmt.Errorf("failed to initialize cursor: %w", insertErr)
		}
	}

	return nil
}
