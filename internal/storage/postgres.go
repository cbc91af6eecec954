package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"codeberg.org/nomoresql/server/internal/examples"
	"codeberg.org/nomoresql/server/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pgvector/pgvector-go"
)

// exports example pairs and their embeddings to Postgres/pgvector
type Client struct {
	db *sql.DB
}

// one exported example: the pair, its index position and both embeddings
type ExampleRow struct {
	Position          int
	Pair              examples.Pair
	QuestionEmbedding []float32
	QueryEmbedding    []float32
}

func NewClient(ctx context.Context, dsn string) (*Client, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database url is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func NewClientWithDB(db *sql.DB) *Client {
	return &Client{db: db}
}

func (c *Client) Close() error {
	return c.db.Close()
}

// creates the pgvector extension and the examples table for the given dimension
func (c *Client) EnsureSchema(ctx context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("invalid embedding dimension %d", dim)
	}

	if _, err := c.db.ExecContext(ctx, createExtensionQuery); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, fmt.Sprintf(createExamplesTableQuery, dim, dim)); err != nil {
		return fmt.Errorf("failed to create examples table: %w", err)
	}

	return nil
}

// deletes all existing examples from the database
func (c *Client) ClearAllExamples(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, deleteAllExamplesQuery); err != nil {
		return fmt.Errorf("failed to clear examples: %w", err)
	}

	return nil
}

// inserts rows in a single transaction
func (c *Client) InsertExamplesBatch(ctx context.Context, rows []ExampleRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insertExampleQuery,
			row.Position,
			row.Pair.Question,
			row.Pair.Query,
			pgvector.NewVector(row.QuestionEmbedding),
			pgvector.NewVector(row.QueryEmbedding),
		); err != nil {
			return fmt.Errorf("failed to insert example %d: %w", row.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// returns the total number of examples in the database
func (c *Client) GetExampleCount(ctx context.Context) (int, error) {
	var count int

	if err := c.db.QueryRowContext(ctx, getExampleCountQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get example count: %w", err)
	}

	return count, nil
}
