package calls

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	call := CallAnalysis{
		ID:              "call-1",
		UserID:          "user-1",
		FileName:        "support.mp3",
		DurationSeconds: 182.4,
		CreatedAt:       time.Now().UTC(),
		Result: Result{
			Transcript:      "hello",
			Analysis:        "fine call",
			Sentiment:       "Positive",
			Score:           "90",
			Topics:          []string{"Billing"},
			Recommendations: "keep it up",
			Duration:        "3:02",
		},
	}

	mock.ExpectExec("INSERT INTO call_analyses").
		WithArgs(
			call.ID,
			call.UserID,
			call.FileName,
			nil, // storage_key
			call.DurationSeconds,
			call.Result.Transcript,
			call.Result.Analysis,
			call.Result.Sentiment,
			call.Result.Score,
			[]byte(`["Billing"]`),
			call.Result.Recommendations,
			call.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), call); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM call_analyses").
		WithArgs("call-missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "file_name", "storage_key", "duration_seconds",
			"transcription", "analysis", "sentiment", "score", "topics", "recommendations", "created_at",
		}))

	if _, err := repo.GetByID(context.Background(), "user-1", "call-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListDecodesTopics(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "storage_key", "duration_seconds",
		"transcription", "analysis", "sentiment", "score", "topics", "recommendations", "created_at",
	}).AddRow("call-1", "user-1", "a.mp3", nil, 60.0, "hi", "ok", "Neutral", "85", `["Billing","Refund"]`, "none", created)

	mock.ExpectQuery("SELECT (.+) FROM call_analyses").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	records, err := repo.ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if len(records[0].Result.Topics) != 2 || records[0].Result.Topics[1] != "Refund" {
		t.Errorf("topics = %v", records[0].Result.Topics)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
