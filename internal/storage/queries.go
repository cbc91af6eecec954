package storage

const (
	createExtensionQuery = `CREATE EXTENSION IF NOT EXISTS vector`

	// %d is the embedding dimension
	createExamplesTableQuery = `
		CREATE TABLE IF NOT EXISTS sql_examples (
			id                 BIGSERIAL PRIMARY KEY,
			position           INTEGER NOT NULL UNIQUE,
			question           TEXT NOT NULL,
			query              TEXT NOT NULL,
			question_embedding vector(%d) NOT NULL,
			query_embedding    vector(%d) NOT NULL,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	deleteAllExamplesQuery = "DELETE FROM sql_examples"
	getExampleCountQuery   = "SELECT COUNT(*) FROM sql_examples"

	insertExampleQuery = `
		INSERT INTO sql_examples (position, question, query, question_embedding, query_embedding)
		VALUES ($1, $2, $3, $4, $5)
	`
)
