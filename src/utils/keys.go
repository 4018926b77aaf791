package utils

import "strings"

var keyReplacer = strings.NewReplacer(" ", "_", "-", "_", "/", "_")

// NormalizeKey maps free-text identifiers ("Food waste", "Paper/cardboard",
// "Semi-continuous stoker") onto the snake_case keys used by the coefficient
// tables.
func NormalizeKey(key string) string {
	return keyReplacer.Replace(strings.ToLower(strings.TrimSpace(key)))
}
