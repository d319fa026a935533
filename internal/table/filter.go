package table

import "strings"

// Filter keeps the rows where any of keys contains query, case-insensitively.
// An empty query returns rows itself. Absent keys match as "".
func Filter(rows []Row, query string, keys []string) []Row {
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		for _, key := range keys {
			if strings.Contains(strings.ToLower(row.String(key)), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
