package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kestrel-hq/forge/pkg/control/ast"
	"kestrel-hq/forge/pkg/scratch"
)

// autosaveLoop snapshots the draft to the scratch store on an interval until
// the session closes. Snapshots are purely recovery-oriented: a failed write
// is logged and skipped, never surfaced as a session error.
func (s *Session) autosaveLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.autosaveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.autosaveOnce(ctx)
		}
	}
}

func (s *Session) autosaveOnce(ctx context.Context) {
	draft := s.Draft()

	payload, err := json.Marshal(draft)
	if err != nil {
		s.logger.Warn("autosave serialization failed", "draft_id", draft.ID, "error", err)
		if s.metrics != nil {
			s.metrics.RecordAutosave("error")
		}
		return
	}

	if err := s.store.Set(ctx, scratch.AutosaveKey(draft.ID), string(payload)); err != nil {
		s.logger.Warn("autosave write failed", "draft_id", draft.ID, "error", err)
		if s.metrics != nil {
			s.metrics.RecordAutosave("error")
		}
		return
	}

	if s.metrics != nil {
		s.metrics.RecordAutosave("ok")
	}
	s.logger.Debug("autosaved draft", "draft_id", draft.ID)
}

// Resume loads a draft's last autosave snapshot from the scratch store, for
// crash recovery when the builder reopens.
func Resume(ctx context.Context, store scratch.Store, draftID string) (*ast.Draft, error) {
	payload, err := store.Get(ctx, scratch.AutosaveKey(draftID))
	if err != nil {
		return nil, fmt.Errorf("no autosave for draft %s: %w", draftID, err)
	}
	var draft ast.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("corrupt autosave for draft %s: %w", draftID, err)
	}
	return &draft, nil
}

// DiscardAutosave removes a draft's autosave snapshot, typically after an
// explicit backend save makes it redundant.
func DiscardAutosave(ctx context.Context, store scratch.Store, draftID string) error {
	return store.Delete(ctx, scratch.AutosaveKey(draftID))
}
