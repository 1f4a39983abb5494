package calls

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new call analysis. Topics are stored as JSONB.
func (r *PGRepo) Create(ctx context.Context, call CallAnalysis) error {
	const query = `
INSERT INTO call_analyses (
	id, user_id, file_name, storage_key, duration_seconds,
	transcription, analysis, sentiment, score, topics, recommendations, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	topics, err := marshalTopics(call.Result.Topics)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		call.ID,
		call.UserID,
		call.FileName,
		nullableString(call.StorageKey),
		call.DurationSeconds,
		call.Result.Transcript,
		call.Result.Analysis,
		call.Result.Sentiment,
		call.Result.Score,
		topics,
		call.Result.Recommendations,
		call.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert call analysis: %w", err)
	}
	return nil
}

// GetByID returns one of the user's call analyses.
func (r *PGRepo) GetByID(ctx context.Context, userID, callID string) (CallAnalysis, error) {
	const query = `
SELECT id, user_id, file_name, storage_key, duration_seconds,
       transcription, analysis, sentiment, score, topics, recommendations, created_at
FROM call_analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, callID, userID)
	call, err := scanCall(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallAnalysis{}, ErrNotFound
		}
		return CallAnalysis{}, fmt.Errorf("get call analysis: %w", err)
	}
	return call, nil
}

// ListByUser returns the user's call analyses, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CallAnalysis, error) {
	const query = `
SELECT id, user_id, file_name, storage_key, duration_seconds,
       transcription, analysis, sentiment, score, topics, recommendations, created_at
FROM call_analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list call analyses: %w", err)
	}
	defer rows.Close()

	var out []CallAnalysis
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("scan call analysis: %w", err)
		}
		out = append(out, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate call analyses: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCall(row rowScanner) (CallAnalysis, error) {
	var call CallAnalysis
	var storageKey sql.NullString
	var topics sql.NullString

	err := row.Scan(
		&call.ID,
		&call.UserID,
		&call.FileName,
		&storageKey,
		&call.DurationSeconds,
		&call.Result.Transcript,
		&call.Result.Analysis,
		&call.Result.Sentiment,
		&call.Result.Score,
		&topics,
		&call.Result.Recommendations,
		&call.CreatedAt,
	)
	if err != nil {
		return CallAnalysis{}, err
	}

	if storageKey.Valid {
		call.StorageKey = storageKey.String
	}
	if topics.Valid && topics.String != "" {
		if err := json.Unmarshal([]byte(topics.String), &call.Result.Topics); err != nil {
			return CallAnalysis{}, fmt.Errorf("decode topics: %w", err)
		}
	}
	return call, nil
}

func marshalTopics(topics []string) ([]byte, error) {
	if topics == nil {
		topics = []string{}
	}
	payload, err := json.Marshal(topics)
	if err != nil {
		return nil, fmt.Errorf("encode topics: %w", err)
	}
	return payload, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
