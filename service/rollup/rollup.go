// Package rollup computes point-in-time cumulative reward aggregates from
// the append-only ledger. Every result is derived on the fly; nothing is
// cached, so recomputation is always safe.
package rollup

import (
	"context"
	"time"

	"github.com/ericlagergren/decimal"

	"gitlab.com/minerex-platform/admin_api/conv"
	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

// Source is the read-only ledger access the computer consumes. Retry
// policy belongs to the source's client, not here.
type Source interface {
	// SumLedgerThrough sums amounts with created_at <= cutoff.
	SumLedgerThrough(ctx context.Context, userID uint64, categories []model.RewardCategory, cutoff time.Time) (*decimal.Big, error)
	// QueryLedgerSum sums amounts over a half-open [start, end) window.
	QueryLedgerSum(ctx context.Context, userID uint64, categories []model.RewardCategory, window model.Window) (*decimal.Big, error)
	GetLedgerEntry(ctx context.Context, entryID uint64) (*model.LedgerEntry, error)
	// QueryLedgerEntriesAt returns all entries at one exact timestamp
	// ordered by sequence id.
	QueryLedgerEntriesAt(ctx context.Context, userID uint64, at time.Time) ([]model.LedgerEntry, error)
}

// Computer derives cumulative sums and before/after pairs.
type Computer struct {
	ledger Source
}

func NewComputer(ledger Source) *Computer {
	return &Computer{ledger: ledger}
}

func validCategories(categories []model.RewardCategory) error {
	if len(categories) == 0 {
		return errs.InvalidArgument("category set must not be empty")
	}
	for _, c := range categories {
		if !c.IsValid() {
			return errs.InvalidArgument("unknown reward category: " + string(c))
		}
	}
	return nil
}

// CumulativeAsOf sums every ledger amount for the user with category in
// the set and timestamp at or before the cutoff.
func (c *Computer) CumulativeAsOf(ctx context.Context, userID uint64, categories []model.RewardCategory, cutoff time.Time) (*decimal.Big, error) {
	if err := validCategories(categories); err != nil {
		return nil, err
	}
	sum, err := c.ledger.SumLedgerThrough(ctx, userID, categories, cutoff)
	if err != nil {
		return nil, err
	}
	return conv.Sum(sum), nil
}

// Rollup builds the per-category cumulative map as of the cutoff.
func (c *Computer) Rollup(ctx context.Context, userID uint64, categories []model.RewardCategory, cutoff time.Time) (model.RollupMetric, error) {
	if len(categories) == 0 {
		categories = model.RewardCategories
	}
	if err := validCategories(categories); err != nil {
		return model.RollupMetric{}, err
	}

	metric := model.RollupMetric{
		UserId:               userID,
		CumulativeByCategory: make(map[model.RewardCategory]model.JSONDecimal, len(categories)),
		AsOf:                 cutoff,
	}
	for _, category := range categories {
		sum, err := c.ledger.SumLedgerThrough(ctx, userID, []model.RewardCategory{category}, cutoff)
		if err != nil {
			return model.RollupMetric{}, err
		}
		metric.CumulativeByCategory[category] = model.NewJSONDecimal(conv.Sum(sum))
	}
	return metric, nil
}

// BeforeAfter computes the cumulative value around one ledger event in
// the event's own category. The ordering is timestamp first, sequence id
// second, so "before" excludes the event itself and everything after it.
func (c *Computer) BeforeAfter(ctx context.Context, userID, entryID uint64) (*model.BeforeAfter, error) {
	entry, err := c.ledger.GetLedgerEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserId != userID {
		return nil, errs.NotFound("ledger entry does not belong to user")
	}

	categories := []model.RewardCategory{entry.Category}

	// strictly earlier timestamps: the half-open end bound excludes the
	// entry's own instant
	earlier, err := c.ledger.QueryLedgerSum(ctx, userID, categories, model.Window{End: &entry.CreatedAt})
	if err != nil {
		return nil, err
	}
	before := conv.Sum(earlier)

	// tie-break: peers at the same instant count only with a lower
	// sequence id
	peers, err := c.ledger.QueryLedgerEntriesAt(ctx, userID, entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	for _, peer := range peers {
		if peer.Id >= entry.Id || peer.Category != entry.Category {
			continue
		}
		if peer.Amount != nil && peer.Amount.V != nil {
			before.Add(before, peer.Amount.V)
		}
	}

	after := conv.Sum(before)
	if entry.Amount != nil && entry.Amount.V != nil {
		after.Add(after, entry.Amount.V)
	}

	return &model.BeforeAfter{
		EntryId: entry.Id,
		Before:  model.NewJSONDecimal(before),
		After:   model.NewJSONDecimal(after),
	}, nil
}
