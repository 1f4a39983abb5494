package calls

import (
	"context"

	"agentiq-backend/internal/history"
)

// RepoRemote adapts the durable repository to the history recorder's remote
// side, so the recorder can mirror locally first and forward here after.
type RepoRemote struct {
	Repo Repo
}

func (r RepoRemote) Save(ctx context.Context, rec history.Record) error {
	return r.Repo.Create(ctx, FromRecord(rec))
}

// FromRecord rebuilds a CallAnalysis from a history record.
func FromRecord(rec history.Record) CallAnalysis {
	return CallAnalysis{
		ID:              rec.ID,
		UserID:          rec.UserID,
		FileName:        rec.FileName,
		StorageKey:      rec.StorageKey,
		DurationSeconds: rec.DurationSeconds,
		CreatedAt:       rec.Date,
		Result: Result{
			Transcript:      rec.Transcript,
			Analysis:        rec.Analysis,
			Sentiment:       rec.Sentiment,
			Score:           rec.Score,
			Topics:          rec.Topics,
			Recommendations: rec.Recommendations,
			Duration:        rec.Duration,
		},
	}
}

// ToRecord flattens a CallAnalysis into a history record.
func ToRecord(call CallAnalysis) history.Record {
	return history.Record{
		ID:              call.ID,
		UserID:          call.UserID,
		Date:            call.CreatedAt,
		FileName:        call.FileName,
		StorageKey:      call.StorageKey,
		DurationSeconds: call.DurationSeconds,
		Transcript:      call.Result.Transcript,
		Analysis:        call.Result.Analysis,
		Sentiment:       call.Result.Sentiment,
		Score:           call.Result.Score,
		Topics:          call.Result.Topics,
		Recommendations: call.Result.Recommendations,
		Duration:        call.Result.Duration,
	}
}
