package models

import (
	"strings"

	"github.com/lib/pq"
)

// CleanURLs trims evidence, photo and image URLs and drops blank entries.
func CleanURLs(urls []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
