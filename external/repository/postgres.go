package repository

import (
	"context"
	"fmt"

	"github.com/foxseedlab/quizwadidaw/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.ScoreRepository {
	return &PostgresRepository{pool: pool}
}

// Shutdown closes the connection pool when the injector shuts down.
func (r *PostgresRepository) Shutdown() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) Load(ctx context.Context) (repository.Scores, error) {
	rows, err := r.pool.Query(ctx, `SELECT group_id, user_id, score FROM group_scores`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	scores := make(repository.Scores)
	for rows.Next() {
		var (
			groupID, userID string
			score           int64
		)
		if err := rows.Scan(&groupID, &userID, &score); err != nil {
			return nil, err
		}
		scores.Add(groupID, map[string]int{userID: int(score)})
	}
	return scores, rows.Err()
}

// Save replaces the table contents in one transaction.
func (r *PostgresRepository) Save(ctx context.Context, scores repository.Scores) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM group_scores`); err != nil {
		return fmt.Errorf("clear group_scores: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"group_scores"},
		[]string{"group_id", "user_id", "score"},
		pgx.CopyFromRows(scoreRows(scores)),
	); err != nil {
		return fmt.Errorf("copy group_scores: %w", err)
	}
	return tx.Commit(ctx)
}

func scoreRows(scores repository.Scores) [][]any {
	var rows [][]any
	for groupID, users := range scores {
		for userID, score := range users {
			rows = append(rows, []any{groupID, userID, int64(score)})
		}
	}
	return rows
}
