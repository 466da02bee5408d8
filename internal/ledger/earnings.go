// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package ledger

import (
	"context"
	"log/slog"
	"time"

	"plume/internal/models"
)

// RunDailyEarnings folds every post's view counter into its creator's
// daily earnings row, credits the wallet, and resets the counter so the
// next cycle counts fresh views. Posts are processed sequentially; the
// day's row accumulates across a creator's posts and across repeated
// runs on the same day.
//
// A creator without a wallet is a warning, not an error: the per-post
// earning is dropped and the run continues.
func (s *Service) RunDailyEarnings(ctx context.Context, now time.Time) ([]*models.EarningResult, error) {
	posts, err := s.posts.List()
	if err != nil {
		return nil, err
	}

	day := now.UTC().Truncate(24 * time.Hour)
	results := make([]*models.EarningResult, 0, len(posts))

	for _, post := range posts {
		earning := post.ViewCount * s.earningRate

		daily, err := s.earnings.Accumulate(post.CreatorID, day, post.ViewCount, earning, post.ID)
		if err != nil {
			return results, err
		}

		balance, ok, err := s.wallets.Credit(post.CreatorID, earning)
		if err != nil {
			return results, err
		}
		if ok {
			results = append(results, &models.EarningResult{
				CreatorID:    post.CreatorID,
				ViewsToday:   daily.ViewsToday,
				EarningToday: daily.EarningToday,
				TotalBalance: balance,
				PostID:       post.ID,
			})
		} else {
			slog.Warn("wallet not found for creator, earning dropped",
				"creator_id", post.CreatorID, "post_id", post.ID, "earning", earning)
		}

		if err := s.posts.ResetViewCount(post.ID); err != nil {
			return results, err
		}
	}

	slog.Info("daily earnings calculated", "posts", len(posts), "credited", len(results))
	return results, nil
}

// ViewsReport lists every post's current view counter with the payout it
// would produce at the configured rate.
func (s *Service) ViewsReport(ctx context.Context) ([]*models.ViewReportRow, error) {
	posts, err := s.posts.List()
	if err != nil {
		return nil, err
	}

	rows := make([]*models.ViewReportRow, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, &models.ViewReportRow{
			PostID:    p.ID,
			CreatorID: p.CreatorID,
			Title:     p.Title,
			ViewCount: p.ViewCount,
			Projected: p.ViewCount * s.earningRate,
		})
	}
	return rows, nil
}
