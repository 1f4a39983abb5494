package calls

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"agentiq-backend/internal/audio"
	"agentiq-backend/internal/extract"
	"agentiq-backend/internal/history"
	"agentiq-backend/internal/llm"
	"agentiq-backend/internal/shared/metrics"
	"agentiq-backend/internal/shared/storage/object"
	"agentiq-backend/internal/shared/telemetry"
	"agentiq-backend/internal/usage"
)

// Service runs the analysis pipeline and serves call history.
//
// The pipeline is synchronous: validate, check quota, archive, transcribe,
// analyze, extract, record. Validation and provider failures stop the
// run and surface to the caller; bookkeeping failures after the analysis
// completed are logged and absorbed, because at that point the user already
// paid for the provider round-trips.
type Service struct {
	Repo            Repo
	Usage           *usage.Service
	Recorder        *history.Recorder
	LLM             llm.Client
	Archive         object.ObjectStore
	MaxAudioSeconds float64

	// Probe overrides the ffprobe-backed duration check in tests.
	Probe func(ctx context.Context, data []byte) (float64, error)
}

// Analyze runs the full pipeline over one uploaded recording.
func (s *Service) Analyze(ctx context.Context, userID, fileName string, data []byte) (CallAnalysis, error) {
	metrics.IncAnalysisStarted()
	started := time.Now()

	call, err := s.analyze(ctx, userID, fileName, data)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncAnalysisFailed()
		return CallAnalysis{}, err
	}
	metrics.IncAnalysisCompleted()
	return call, nil
}

func (s *Service) analyze(ctx context.Context, userID, fileName string, data []byte) (CallAnalysis, error) {
	if len(data) == 0 {
		return CallAnalysis{}, ErrEmptyAudio
	}

	if s.Usage != nil {
		if _, err := s.Usage.CheckLimit(ctx, userID); err != nil {
			return CallAnalysis{}, err
		}
	}

	probe := s.Probe
	if probe == nil {
		probe = audio.ProbeDuration
	}

	// Duration validation fails closed: a recording we cannot measure is
	// rejected rather than sent to the provider.
	durationSeconds, err := probe(ctx, data)
	if err != nil {
		telemetry.Warn("audio probe failed", map[string]any{"err": err.Error(), "fileName": fileName})
		return CallAnalysis{}, fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}
	if s.MaxAudioSeconds > 0 && durationSeconds > s.MaxAudioSeconds {
		return CallAnalysis{}, fmt.Errorf("%w (%.0fs > %.0fs)", ErrAudioTooLong, durationSeconds, s.MaxAudioSeconds)
	}

	storageKey := s.archiveAudio(ctx, userID, fileName, data)

	transcript, err := s.LLM.Transcribe(ctx, llm.AudioInput{FileName: fileName, Data: data})
	if err != nil {
		return CallAnalysis{}, &ProviderError{Stage: "transcription", Err: err}
	}

	analysisText, err := s.LLM.Analyze(ctx, transcript)
	if err != nil {
		return CallAnalysis{}, &ProviderError{Stage: "analysis", Err: err}
	}

	parsed := extract.Parse(analysisText)

	call := CallAnalysis{
		ID:              history.NewID(),
		UserID:          userID,
		FileName:        fileName,
		StorageKey:      storageKey,
		DurationSeconds: durationSeconds,
		CreatedAt:       time.Now(),
		Result: Result{
			Transcript:      transcript,
			Analysis:        analysisText,
			Sentiment:       parsed.Sentiment,
			Score:           parsed.Score,
			Topics:          parsed.Topics,
			Recommendations: parsed.Recommendations,
			Duration:        audio.FormatDuration(durationSeconds),
		},
	}

	// The recorder mirrors locally before the durable write and never fails.
	// Quota needs no separate bookkeeping: counts derive from the records this
	// save produces, so an analysis that never persisted charges nothing.
	call.ID = s.Recorder.Save(ctx, ToRecord(call))

	return call, nil
}

// Get returns one of the user's analyses, falling back to the local mirror
// when the repository is unavailable.
func (s *Service) Get(ctx context.Context, userID, callID string) (CallAnalysis, error) {
	call, err := s.Repo.GetByID(ctx, userID, callID)
	if err == nil {
		return call, nil
	}
	if errors.Is(err, ErrNotFound) {
		return CallAnalysis{}, ErrNotFound
	}

	telemetry.Warn("call lookup falling back to local cache", map[string]any{"err": err.Error(), "callId": callID})
	for _, rec := range s.Recorder.RecentLocal(userID) {
		if rec.ID == callID {
			return FromRecord(rec), nil
		}
	}
	return CallAnalysis{}, ErrNotFound
}

// List returns the user's analyses, newest first. When the repository is
// unreachable it serves the local mirror and reports fromCache.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) (records []CallAnalysis, fromCache bool, err error) {
	records, err = s.Repo.ListByUser(ctx, userID, limit, offset)
	if err == nil {
		return records, false, nil
	}

	telemetry.Warn("call listing falling back to local cache", map[string]any{"err": err.Error(), "userId": userID})
	cached := s.Recorder.RecentLocal(userID)
	if offset >= len(cached) {
		return nil, true, nil
	}
	cached = cached[offset:]
	if limit > 0 && len(cached) > limit {
		cached = cached[:limit]
	}
	out := make([]CallAnalysis, 0, len(cached))
	for _, rec := range cached {
		out = append(out, FromRecord(rec))
	}
	return out, true, nil
}

// OpenAudio streams the archived copy of a call's recording. Recordings that
// were never archived (archive disabled, or the best-effort save failed)
// report ErrNotFound.
func (s *Service) OpenAudio(ctx context.Context, userID, callID string) (io.ReadCloser, CallAnalysis, error) {
	call, err := s.Get(ctx, userID, callID)
	if err != nil {
		return nil, CallAnalysis{}, err
	}
	if s.Archive == nil || call.StorageKey == "" {
		return nil, call, ErrNotFound
	}
	rc, err := s.Archive.Open(ctx, call.StorageKey)
	if err != nil {
		return nil, call, fmt.Errorf("open archived audio: %w", err)
	}
	return rc, call, nil
}

// archiveAudio keeps a best-effort copy of the original recording. Archive
// failures never block the pipeline.
func (s *Service) archiveAudio(ctx context.Context, userID, fileName string, data []byte) string {
	if s.Archive == nil {
		return ""
	}
	storageKey, _, _, err := s.Archive.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Warn("audio archive failed", map[string]any{"err": err.Error(), "fileName": fileName})
		return ""
	}
	return storageKey
}
