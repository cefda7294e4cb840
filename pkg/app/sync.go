package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/remote"
)

// SyncResult counts the outcome of one pending-queue pass.
type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// SyncPending retries every queued entry against the remote. Entries that
// make it are dropped from the queue; the rest stay for the next pass.
func (s *Service) SyncPending(ctx context.Context) (SyncResult, error) {
	if s.Persistence == nil {
		return SyncResult{}, ErrNoPersistence
	}
	pending := s.Persistence.Pending(ctx)
	if len(pending) == 0 {
		return SyncResult{}, nil
	}
	if s.Remote == nil {
		return SyncResult{Failed: len(pending)}, fmt.Errorf("app: sync: no remote configured: %w", remote.ErrRemoteUnavailable)
	}

	var (
		result SyncResult
		failed []*entry.Entry
	)
	for _, e := range pending {
		if err := ctx.Err(); err != nil {
			failed = append(failed, e)
			continue
		}
		if err := createRemote(ctx, s.Remote, e); err != nil {
			s.Logger().Debug("app: sync failed", zap.String("id", e.ID), zap.Error(err))
			failed = append(failed, e)
			continue
		}
		result.Synced++
	}
	result.Failed = len(failed)

	if err := s.Persistence.SetPending(ctx, failed); err != nil {
		return result, fmt.Errorf("app: sync: store queue: %w", err)
	}
	s.Logger().Info("app: sync finished", zap.Int("synced", result.Synced), zap.Int("failed", result.Failed))
	return result, nil
}
