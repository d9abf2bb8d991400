package util

import "strings"

// SplitList splits a pipe separated CSV cell into its trimmed, non empty items
func SplitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(cell, "|") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
