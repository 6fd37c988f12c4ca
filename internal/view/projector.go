// Package view computes the two grouped projections of a row snapshot.
// Projection is pure: it never mutates its input and never fails for
// well-formed input, so both the API handler and the web renderer can
// share it.
package view

import (
	"fmt"
	"sort"

	"doctrack/internal/models"
)

type Mode string

const (
	ModeTime     Mode = "time"
	ModeCategory Mode = "category"
)

// UncategorizedLabel is the display label for the empty-category group.
// The grouping key itself stays the empty string.
const UncategorizedLabel = "Uncategorized"

// ParseMode maps the group query parameter to a Mode. An empty value
// defaults to time mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeTime):
		return ModeTime, nil
	case string(ModeCategory):
		return ModeCategory, nil
	default:
		return "", fmt.Errorf("unknown grouping mode %q", s)
	}
}

type Group struct {
	Key   string
	Label string
	Rows  []models.Row
}

type Projection struct {
	Mode Mode
	// Rows is set in time mode: newest first, stable for equal timestamps.
	Rows []models.Row
	// Groups is set in category mode, ordered by first appearance of
	// each category in the input.
	Groups []Group
	// TotalFiles counts every attachment across all rows and kinds.
	TotalFiles int
}

func Project(rows []models.Row, mode Mode) Projection {
	p := Projection{Mode: mode, TotalFiles: TotalFiles(rows)}

	switch mode {
	case ModeCategory:
		index := make(map[string]int)
		for _, row := range rows {
			i, ok := index[row.Category]
			if !ok {
				label := row.Category
				if label == "" {
					label = UncategorizedLabel
				}
				i = len(p.Groups)
				index[row.Category] = i
				p.Groups = append(p.Groups, Group{Key: row.Category, Label: label})
			}
			p.Groups[i].Rows = append(p.Groups[i].Rows, row)
		}
	default:
		p.Rows = make([]models.Row, len(rows))
		copy(p.Rows, rows)
		sort.SliceStable(p.Rows, func(i, j int) bool {
			return p.Rows[i].CreatedAt.After(p.Rows[j].CreatedAt)
		})
	}

	return p
}

// TotalFiles is the summary badge count. It must match the number of
// file entries actually rendered across all kind cells.
func TotalFiles(rows []models.Row) int {
	n := 0
	for _, row := range rows {
		n += row.FileCount()
	}
	return n
}
