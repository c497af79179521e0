package model

// Partial is the contribution of a single repository to a language
type Partial struct {
	Repository string  `json:"repository"`
	Stars      float64 `json:"stars"`
}

type AggregatedLanguage struct {
	Name   string    `json:"name"`
	Stars  float64   `json:"stars"`
	Color  string    `json:"color"`
	Source []Partial `json:"source"`
}

// AccountResult is the output computed for one login
// it is shared by the cache between requests and must be treated as read-only
type AccountResult struct {
	Name      string               `json:"name"`
	Login     string               `json:"login"`
	Stars     uint                 `json:"stars"`
	Languages []AggregatedLanguage `json:"languages"`
}
