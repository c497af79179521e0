package service

import (
	"cmp"
	"slices"

	"github.com/cuducos/astronomer/model"
)

// DistributeStars split the stars of a repository between its languages, proportionally to their size
// a repository where no line of code is reported gives zero star to each of its languages
func DistributeStars(repo *model.RepositoryRecord) {
	var totalLines uint

	for _, l := range repo.LanguageUsages {
		totalLines += l.LineCount
	}

	for i := range repo.LanguageUsages {
		if totalLines == 0 {
			repo.LanguageUsages[i].WeightedStars = 0
			continue
		}

		weight := float64(repo.LanguageUsages[i].LineCount) / float64(totalLines)
		repo.LanguageUsages[i].WeightedStars = float64(repo.TotalStars) * weight
	}
}

// AggregateLanguages merge the weighted languages of all repositories
// repositories and languages are merged in the order given, this order matters:
//   - the color of a language is the one of the first repository reporting it
//   - languages (or sources) with the same number of stars keep their merge order
//
// languages without any star are dropped once everything is merged
func AggregateLanguages(repos []model.RepositoryRecord) []model.AggregatedLanguage {
	positions := make(map[string]int)
	merged := make([]model.AggregatedLanguage, 0)

	for _, repo := range repos {
		for _, usage := range repo.LanguageUsages {
			position, found := positions[usage.Name]

			if !found {
				position = len(merged)
				positions[usage.Name] = position
				merged = append(merged, model.AggregatedLanguage{
					Name:   usage.Name,
					Color:  usage.Color,
					Source: make([]model.Partial, 0),
				})
			}

			language := &merged[position]

			if usage.WeightedStars > 0 {
				language.Source = append(language.Source, model.Partial{
					Repository: repo.Name,
					Stars:      usage.WeightedStars,
				})
			}

			language.Stars += usage.WeightedStars
		}
	}

	languages := make([]model.AggregatedLanguage, 0, len(merged))

	for _, l := range merged {
		if l.Stars > 0 {
			languages = append(languages, l)
		}
	}

	slices.SortStableFunc(languages, func(a, b model.AggregatedLanguage) int {
		return cmp.Compare(b.Stars, a.Stars)
	})

	for i := range languages {
		// the latest contribution merged comes first among equal ones
		slices.Reverse(languages[i].Source)
		slices.SortStableFunc(languages[i].Source, func(a, b model.Partial) int {
			return cmp.Compare(b.Stars, a.Stars)
		})
	}

	return languages
}

// BuildAccountResult run the stars distribution and the merge on a freshly fetched account
// repositories of the account are modified in place
func BuildAccountResult(account model.FetchedAccount) model.AccountResult {
	for i := range account.Repositories {
		DistributeStars(&account.Repositories[i])
	}

	return model.AccountResult{
		Name:      account.DisplayName,
		Login:     account.Login,
		Stars:     account.TotalStars(),
		Languages: AggregateLanguages(account.Repositories),
	}
}
