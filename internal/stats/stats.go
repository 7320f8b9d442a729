// server/internal/stats/stats.go
//
// Package stats computes dashboard summaries from a full snapshot of the
// asset collection. Every function here is pure: the same snapshot and
// evaluation time always produce the same result, and grouping order is
// first-encounter order, never sorted.
package stats

import (
	"sort"
	"time"

	"asset-hub-api-server/internal/models"
)

// RecentWindow bounds how old an asset may be to count as recent.
const RecentWindow = 30 * 24 * time.Hour

// RecentLimit caps the recent-assets list.
const RecentLimit = 5

// UnassignedLocation buckets assets that carry no location value.
const UnassignedLocation = "unassigned"

// UnknownCondition buckets assets that carry no condition value.
const UnknownCondition = "unknown"

// NameCount is one grouping bucket. Buckets appear in the order their key
// was first seen in the snapshot.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats is the precomputed summary backing the main dashboard.
type DashboardStats struct {
	TotalAssets       int            `json:"totalAssets"`
	AvailableAssets   int            `json:"availableAssets"`
	AssignedAssets    int            `json:"assignedAssets"`
	MaintenanceAssets int            `json:"maintenanceAssets"`
	ByCategory        []NameCount    `json:"byCategory"`
	ByStatus          []NameCount    `json:"byStatus"`
	ByType            []NameCount    `json:"byType"`
	ByLocation        []NameCount    `json:"byLocation"`
	RecentAssets      []models.Asset `json:"recentAssets"`
}

// LocationStats is the per-location breakdown.
type LocationStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByType   map[string]int `json:"byType"`
}

// ConditionStats holds the overall condition distribution plus a nested
// per-type distribution.
type ConditionStats struct {
	Overall []NameCount               `json:"overall"`
	ByType  map[string]map[string]int `json:"byType"`
}

// grouping accumulates counts keyed by value in first-seen order.
type grouping struct {
	order  []string
	counts map[string]int
}

func newGrouping() *grouping {
	return &grouping{counts: make(map[string]int)}
}

func (g *grouping) add(key string) {
	if _, seen := g.counts[key]; !seen {
		g.order = append(g.order, key)
	}
	g.counts[key]++
}

func (g *grouping) pairs() []NameCount {
	out := make([]NameCount, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, NameCount{Name: key, Count: g.counts[key]})
	}
	return out
}

// ComputeDashboardStats folds the snapshot into per-status counters,
// first-seen-order groupings and the recent-assets view. An asset missing a
// grouping value is skipped for that grouping only; it still counts toward
// the totals.
func ComputeDashboardStats(assets []models.Asset, now time.Time) DashboardStats {
	byCategory := newGrouping()
	byStatus := newGrouping()
	byType := newGrouping()
	byLocation := newGrouping()

	stats := DashboardStats{RecentAssets: []models.Asset{}}
	cutoff := now.Add(-RecentWindow)
	var recent []models.Asset

	for _, a := range assets {
		stats.TotalAssets++
		switch a.Status {
		case models.AssetStatusAvailable:
			stats.AvailableAssets++
		case models.AssetStatusAssigned:
			stats.AssignedAssets++
		case models.AssetStatusMaintenance:
			stats.MaintenanceAssets++
		}

		if a.Category != "" {
			byCategory.add(a.Category)
		}
		if a.Status != "" {
			byStatus.add(a.Status)
		}
		if a.Type != "" {
			byType.add(a.Type)
		}
		if a.Location != "" {
			byLocation.add(a.Location)
		}

		if !a.CreatedAt.Before(cutoff) && !a.CreatedAt.After(now) {
			recent = append(recent, a)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	if recent != nil {
		stats.RecentAssets = recent
	}

	stats.ByCategory = byCategory.pairs()
	stats.ByStatus = byStatus.pairs()
	stats.ByType = byType.pairs()
	stats.ByLocation = byLocation.pairs()
	return stats
}

// ComputeAssetsByLocation groups the snapshot per location with nested
// status and type breakdowns. When locations is non-empty only those
// locations are considered; assets without a location fall under the
// "unassigned" bucket.
func ComputeAssetsByLocation(assets []models.Asset, locations []string) map[string]*LocationStats {
	var wanted map[string]bool
	if len(locations) > 0 {
		wanted = make(map[string]bool, len(locations))
		for _, l := range locations {
			wanted[l] = true
		}
	}

	result := make(map[string]*LocationStats)
	for _, a := range assets {
		key := a.Location
		if key == "" {
			key = UnassignedLocation
		}
		if wanted != nil && !wanted[key] {
			continue
		}

		ls, exists := result[key]
		if !exists {
			ls = &LocationStats{
				ByStatus: make(map[string]int),
				ByType:   make(map[string]int),
			}
			result[key] = ls
		}
		ls.Total++
		if a.Status != "" {
			ls.ByStatus[a.Status]++
		}
		if a.Type != "" {
			ls.ByType[a.Type]++
		}
	}
	return result
}

// ComputeConditionStats builds the overall condition distribution and a
// per-type nested distribution. Missing conditions are reported as
// "unknown".
func ComputeConditionStats(assets []models.Asset) ConditionStats {
	overall := newGrouping()
	byType := make(map[string]map[string]int)

	for _, a := range assets {
		condition := a.Condition
		if condition == "" {
			condition = UnknownCondition
		}
		overall.add(condition)

		if a.Type == "" {
			continue
		}
		if byType[a.Type] == nil {
			byType[a.Type] = make(map[string]int)
		}
		byType[a.Type][condition]++
	}

	return ConditionStats{Overall: overall.pairs(), ByType: byType}
}
