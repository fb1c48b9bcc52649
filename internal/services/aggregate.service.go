package services

import (
	"fmt"
	"math"
	"sort"
	"steamsize/internal/models"
	"strconv"
)

// MaxRankedGames caps the per-game breakdown
const MaxRankedGames = 20

// TB is the GB threshold at which totals are displayed in terabytes
const TB = 1024

// Catalog is the lookup side of the size database
type Catalog interface {
	Lookup(id string) (models.SizeEntry, bool)
}

// Aggregate joins an owned-games list against the catalog.
// Pipeline: Match → Sum → Sort → Limit → Format
func Aggregate(games []models.OwnedGame, catalog Catalog) models.SizeResult {
	// MATCH + SUM
	matched := make([]models.GameWithSize, 0, len(games))
	var total float64
	for _, g := range games {
		entry, ok := catalog.Lookup(strconv.FormatUint(g.AppID, 10))
		if !ok {
			continue
		}

		name := entry.Name
		if g.Name != nil {
			name = *g.Name
		}

		total += entry.SizeGB
		matched = append(matched, models.GameWithSize{Name: name, Size: entry.SizeGB})
	}

	// SORT: largest first, Steam order kept among equal sizes
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Size > matched[j].Size
	})

	// LIMIT
	if len(matched) > MaxRankedGames {
		matched = matched[:MaxRankedGames]
	}

	return models.SizeResult{
		TotalSizeGB:      total,
		TotalSizeDisplay: FormatSize(total),
		TotalGames:       len(games),
		Games:            matched,
	}
}

// FormatSize renders a GB total as "x.xx GB" or "x.xx TB"
func FormatSize(gb float64) string {
	if gb >= TB {
		return fmt.Sprintf("%.2f TB", round2(gb/TB))
	}
	return fmt.Sprintf("%.2f GB", round2(gb))
}

// round2 rounds half away from zero, so 512.345 becomes 512.35 even though
// its binary value sits just below the midpoint.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
