package pipeline

import "strings"

// WordsPerMinute is the reading speed used for the reading time estimate.
const WordsPerMinute = 200

// WordCount counts whitespace-delimited tokens of the raw Markdown.
func WordCount(markdown string) int {
	return len(strings.Fields(markdown))
}

// ReadingTime returns the estimated minutes needed to read markdown:
// ceil(words / WordsPerMinute), 0 for blank input.
func ReadingTime(markdown string) int {
	words := WordCount(markdown)
	if words == 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
