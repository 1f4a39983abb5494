package history

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"agentiq-backend/internal/shared/telemetry"
)

// Per-field truncation for the local mirror. The remote store keeps full text.
const mirrorFieldMax = 500

// Remote is the durable side of history persistence, normally backed by the
// calls repository.
type Remote interface {
	Save(ctx context.Context, rec Record) error
}

// Recorder saves a finished analysis to the local cache and then, best
// effort, to the remote store. Saving never fails: persistence problems must
// not cost the user a completed analysis.
type Recorder struct {
	cache  *Cache
	remote Remote
}

func NewRecorder(cache *Cache, remote Remote) *Recorder {
	return &Recorder{cache: cache, remote: remote}
}

// Save assigns the record an id, mirrors it locally, and forwards it to the
// remote store. Remote failures are logged and swallowed; the returned id is
// always valid.
func (r *Recorder) Save(ctx context.Context, rec Record) string {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}

	mirror := rec
	mirror.Transcript = truncate(mirror.Transcript)
	mirror.Analysis = truncate(mirror.Analysis)
	mirror.Recommendations = truncate(mirror.Recommendations)

	if err := r.cache.Add(mirror); err != nil {
		telemetry.Warn("history cache write failed", map[string]any{"err": err.Error(), "id": rec.ID})
	}

	if r.remote != nil {
		if err := r.remote.Save(ctx, rec); err != nil {
			telemetry.Error("history remote save failed", map[string]any{"err": err.Error(), "id": rec.ID})
		}
	}

	return rec.ID
}

// RecentLocal reads the user's mirror, for when the remote store is down.
func (r *Recorder) RecentLocal(userID string) []Record {
	return r.cache.Recent(userID)
}

// NewID builds a history record id from the current time and a random suffix.
func NewID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("call-%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("call-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(b[:]))
}

// truncate caps s at mirrorFieldMax runes, never splitting a multi-byte
// character.
func truncate(s string) string {
	if len(s) <= mirrorFieldMax {
		return s
	}
	runes := []rune(s)
	if len(runes) <= mirrorFieldMax {
		return s
	}
	return string(runes[:mirrorFieldMax])
}
