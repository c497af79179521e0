package model

// DefaultLanguageColor is used when GitHub has no color registered for a language
const DefaultLanguageColor = "#efefef"

type LanguageUsage struct {
	Name          string
	LineCount     uint
	Color         string
	WeightedStars float64 // set by the stars distribution, zero when fetched
}

type RepositoryRecord struct {
	Name           string // nameWithOwner, ex: cuducos/astronomer
	TotalStars     uint
	LanguageUsages []LanguageUsage
}

// FetchedAccount is the raw result of a full paginated fetch for a login
type FetchedAccount struct {
	Login        string
	DisplayName  string
	Repositories []RepositoryRecord
}

// TotalStars sum the stars of every repository, even the ones without any language
func (a FetchedAccount) TotalStars() uint {
	var total uint

	for _, r := range a.Repositories {
		total += r.TotalStars
	}

	return total
}
