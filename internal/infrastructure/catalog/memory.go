package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/gearmatch/backend/internal/domain"
)

// MemoryCatalog is an in-memory VehicleRepository. The production deployment
// fronts the real catalog service; this implementation backs local
// development and tests, and keeps the MSRP-descending listing order the
// ranking tie-break depends on.
type MemoryCatalog struct {
	mutex    sync.RWMutex
	vehicles []domain.Vehicle
	byID     map[string]int
}

// NewMemoryCatalog creates a catalog seeded with the given vehicles
func NewMemoryCatalog(vehicles []domain.Vehicle) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.Replace(vehicles)
	return c
}

// Replace swaps the whole inventory, re-sorting by MSRP descending.
// Vehicles without an MSRP sort last.
func (c *MemoryCatalog) Replace(vehicles []domain.Vehicle) {
	sorted := make([]domain.Vehicle, len(vehicles))
	copy(sorted, vehicles)
	sort.SliceStable(sorted, func(i, j int) bool {
		left, right := sorted[i].MSRP, sorted[j].MSRP
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return *left > *right
	})

	byID := make(map[string]int, len(sorted))
	for i, v := range sorted {
		byID[v.ID] = i
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.vehicles = sorted
	c.byID = byID
}

// ListVehicles returns a page of the inventory in MSRP-descending order
func (c *MemoryCatalog) ListVehicles(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(c.vehicles) {
		return []domain.Vehicle{}, nil
	}

	end := len(c.vehicles)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page := make([]domain.Vehicle, end-offset)
	copy(page, c.vehicles[offset:end])
	return page, nil
}

// GetByID looks up a single vehicle
func (c *MemoryCatalog) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	idx, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}

	vehicle := c.vehicles[idx]
	return &vehicle, nil
}

// Size returns the number of vehicles in the catalog
func (c *MemoryCatalog) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.vehicles)
}

var _ domain.VehicleRepository = (*MemoryCatalog)(nil)
