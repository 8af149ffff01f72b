package state

import "github.com/glabrego/pulse-cli/internal/social"

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// RemainingRows is the number of rows below the cursor. Feed pagination
// compares it against the scroll threshold.
func RemainingRows(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	return size - 1 - ClampCursor(cursor, size)
}

func ItemIndexByID(items []social.Item, id int64) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// MergeItems appends page to items, skipping ids already present.
func MergeItems(items, page []social.Item) []social.Item {
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		seen[item.ID] = struct{}{}
	}
	out := items
	for _, item := range page {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}
