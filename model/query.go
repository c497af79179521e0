package model

import "strings"

// RepositoryStatus filter repositories on their archived state
type RepositoryStatus string

const (
	StatusAll      RepositoryStatus = "all"
	StatusActive   RepositoryStatus = "active"
	StatusArchived RepositoryStatus = "archived"
)

// ParseRepositoryStatus is case insensitive, any unknown value means all repositories
func ParseRepositoryStatus(status string) RepositoryStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(StatusActive):
		return StatusActive
	case string(StatusArchived):
		return StatusArchived
	default:
		return StatusAll
	}
}

// IsArchived returns the value of the isArchived variable sent to Github
// nil means no filter at all
func (s RepositoryStatus) IsArchived() *bool {
	var archived bool

	switch s {
	case StatusActive:
		archived = false
	case StatusArchived:
		archived = true
	default:
		return nil
	}

	return &archived
}

type ResultQuery struct {
	Exclude string `form:"exclude"`
	Top     uint   `form:"top"`
	Status  string `form:"status"`
}

func (params ResultQuery) RepositoryStatus() RepositoryStatus {
	return ParseRepositoryStatus(params.Status)
}

// ExcludedLanguages split the comma separated list of languages to exclude
func (params ResultQuery) ExcludedLanguages() map[string]struct{} {
	excluded := make(map[string]struct{})

	for _, name := range strings.Split(params.Exclude, ",") {
		name = strings.TrimSpace(name)

		if name != "" {
			excluded[name] = struct{}{}
		}
	}

	return excluded
}

// Apply remove excluded languages and keep only the top N (0 means all of them)
// the result given in parameter is never modified, a copy of the languages is returned
func (params ResultQuery) Apply(result AccountResult) AccountResult {
	excluded := params.ExcludedLanguages()
	languages := make([]AggregatedLanguage, 0, len(result.Languages))

	for _, l := range result.Languages {
		if _, found := excluded[l.Name]; found {
			continue
		}

		if params.Top > 0 && uint(len(languages)) >= params.Top {
			break
		}

		languages = append(languages, l)
	}

	result.Languages = languages
	return result
}
