package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.QuoteRepository = (*QuoteStore)(nil)
	_ ports.HealthChecker   = (*QuoteStore)(nil)
)

const quoteEntity = "quote"

// quoteRow is the database representation of a quote.
type quoteRow struct {
	ID        int64     `db:"id"`
	Author    string    `db:"author"`
	Content   string    `db:"content"`
	DateAdded time.Time `db:"date_added"`
}

func (r quoteRow) toDomain() domain.Quote {
	return domain.Quote{
		ID:        r.ID,
		Author:    r.Author,
		Content:   r.Content,
		DateAdded: r.DateAdded.UTC(),
	}
}

// QuoteStore persists quotes in a SQL database.
// Queries are written with ? placeholders and rebound for the active driver.
type QuoteStore struct {
	db *sqlx.DB
}

// NewQuoteStore wraps an existing connection pool. The schema must already exist.
func NewQuoteStore(db *sqlx.DB) *QuoteStore {
	return &QuoteStore{db: db}
}

// List returns every quote ordered by id.
func (s *QuoteStore) List(ctx context.Context) ([]domain.Quote, error) {
	const query = `SELECT id, author, content, date_added FROM quotes ORDER BY id`

	var rows []quoteRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	quotes := make([]domain.Quote, 0, len(rows))
	for _, r := range rows {
		quotes = append(quotes, r.toDomain())
	}

	return quotes, nil
}

// GetByID returns a single quote or a domain.NotFoundError.
func (s *QuoteStore) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	query := s.db.Rebind(`SELECT id, author, content, date_added FROM quotes WHERE id = ?`)

	var row quoteRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError(quoteEntity, id)
		}
		return nil, fmt.Errorf("getting quote %d: %w", id, err)
	}

	q := row.toDomain()
	return &q, nil
}

// Insert stores a new quote and returns the stored record.
// A zero DateAdded is replaced with the current UTC time.
func (s *QuoteStore) Insert(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	stored := *quote
	if stored.DateAdded.IsZero() {
		stored.DateAdded = time.Now().UTC()
	}
	stored.DateAdded = stored.DateAdded.UTC()

	query := s.db.Rebind(`INSERT INTO quotes (author, content, date_added) VALUES (?, ?, ?) RETURNING id`)

	if err := s.db.GetContext(ctx, &stored.ID, query, stored.Author, stored.Content, stored.DateAdded); err != nil {
		return nil, fmt.Errorf("inserting quote: %w", err)
	}

	return &stored, nil
}

// DeleteByID removes a quote. Deleting a missing quote returns a domain.NotFoundError.
func (s *QuoteStore) DeleteByID(ctx context.Context, id int64) error {
	query := s.db.Rebind(`DELETE FROM quotes WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting quote %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting quote %d: %w", id, err)
	}

	if affected == 0 {
		return domain.NewNotFoundError(quoteEntity, id)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *QuoteStore) Name() string {
	return "database"
}

// Check implements ports.HealthChecker by pinging the database.
func (s *QuoteStore) Check(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.NewUnavailableError("database", err.Error())
	}

	return nil
}

// Close releases the connection pool.
func (s *QuoteStore) Close() error {
	return s.db.Close()
}
