package suggest

import (
	"time"

	"larder/internal/models"
)

// DefaultExpiryHorizonDays is how far ahead a batch expiration still counts
// as "expiring soon". Urgency, not freshness, is the signal: batches that
// are already past their date are included too.
const DefaultExpiryHorizonDays = 5

// Snapshot is the per-request view of the pantry the scorer works from.
// Keys are normalized item names.
type Snapshot struct {
	InStock  map[string]bool
	Expiring map[string]bool
}

// BuildSnapshot derives the in-stock and expiring-soon name sets from the
// current inventory. An item counts as in stock regardless of batch count;
// an item record with zero batches is still "in stock" (a known quirk the
// rest of the system depends on, covered by a named test).
func BuildSnapshot(items []models.Item, now time.Time, horizonDays int) Snapshot {
	if horizonDays <= 0 {
		horizonDays = DefaultExpiryHorizonDays
	}
	soon := now.Add(time.Duration(horizonDays) * 24 * time.Hour)

	snap := Snapshot{
		InStock:  make(map[string]bool, len(items)),
		Expiring: make(map[string]bool),
	}
	for _, item := range items {
		n := Normalize(item.Name)
		snap.InStock[n] = true
		for _, b := range item.Batches {
			if b.ExpiresOn != nil && !b.ExpiresOn.After(soon) {
				snap.Expiring[n] = true
				break
			}
		}
	}
	return snap
}
