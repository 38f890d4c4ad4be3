package model

import "fmt"

// Difficulty is the difficulty label LeetCode assigns to a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Known reports whether d is one of the three labels LeetCode publishes.
func (d Difficulty) Known() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ProblemRecord is one exported problem. Records are created once per
// successful detail fetch and never mutated afterwards.
type ProblemRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	URL         string     `json:"url"`
}

// ProblemSummary is a single row of the problemset listing.
type ProblemSummary struct {
	Slug       string
	Title      string
	Difficulty Difficulty
}

// DefaultSiteURL is the public LeetCode origin used to build problem links.
const DefaultSiteURL = "https://leetcode.com"

// ProblemURL returns the canonical problem page for slug under site.
func ProblemURL(site, slug string) string {
	if site == "" {
		site = DefaultSiteURL
	}
	return fmt.Sprintf("%s/problems/%s/", site, slug)
}
