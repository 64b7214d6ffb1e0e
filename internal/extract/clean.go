// Package extract turns the loosely formatted text returned by the generation
// provider into domain records.
package extract

import "strings"

var noise = strings.NewReplacer("*", "", "\n", "")

// Clean drops markdown emphasis and line breaks and trims the result.
func Clean(s string) string {
	return strings.TrimSpace(noise.Replace(s))
}
