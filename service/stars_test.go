package service

import (
	"math"
	"testing"

	"github.com/cuducos/astronomer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repository(name string, stars uint, languages ...model.LanguageUsage) model.RepositoryRecord {
	return model.RepositoryRecord{Name: name, TotalStars: stars, LanguageUsages: languages}
}

func usage(name string, lines uint, color string) model.LanguageUsage {
	return model.LanguageUsage{Name: name, LineCount: lines, Color: color}
}

func weighted(name string, stars float64, color string) model.LanguageUsage {
	return model.LanguageUsage{Name: name, WeightedStars: stars, Color: color}
}

func TestDistributeStars(t *testing.T) {
	tests := []struct {
		name     string
		repo     model.RepositoryRecord
		expected []float64
	}{
		{
			name:     "Stars split by lines",
			repo:     repository("a/a", 10, usage("Go", 80, "#00ADD8"), usage("Rust", 20, "#dea584")),
			expected: []float64{8.0, 2.0},
		},
		{
			name:     "Repository without stars",
			repo:     repository("a/b", 0, usage("Go", 100, "#00ADD8")),
			expected: []float64{0.0},
		},
		{
			name:     "Uneven split",
			repo:     repository("a/c", 7, usage("Go", 1, ""), usage("Rust", 2, ""), usage("Elm", 4, "")),
			expected: []float64{1.0, 2.0, 4.0},
		},
		{
			name:     "Repository without any line gives zero star",
			repo:     repository("a/d", 5, usage("Go", 0, ""), usage("Rust", 0, "")),
			expected: []float64{0.0, 0.0},
		},
		{
			name:     "Repository without languages",
			repo:     repository("a/e", 5),
			expected: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			DistributeStars(&tt.repo)

			require.Len(t, tt.repo.LanguageUsages, len(tt.expected))

			var total float64
			for i, l := range tt.repo.LanguageUsages {
				assert.False(t, math.IsNaN(l.WeightedStars))
				assert.InDelta(t, tt.expected[i], l.WeightedStars, 1e-9)
				total += l.WeightedStars
			}

			// every star is distributed when the repository has lines
			var lines uint
			for _, l := range tt.repo.LanguageUsages {
				lines += l.LineCount
			}
			if lines > 0 {
				assert.InEpsilon(t, float64(tt.repo.TotalStars)+1, total+1, 1e-9)
			}
		})
	}
}

func TestAggregateLanguages(t *testing.T) {
	tests := []struct {
		name     string
		repos    []model.RepositoryRecord
		expected []model.AggregatedLanguage
	}{
		{
			name: "Zero contributions are not listed as source",
			repos: []model.RepositoryRecord{
				repository("RepoA", 10, weighted("Go", 8.0, "#00ADD8"), weighted("Rust", 2.0, "#dea584")),
				repository("RepoB", 0, weighted("Go", 0.0, "#00ADD8")),
			},
			expected: []model.AggregatedLanguage{
				{Name: "Go", Stars: 8.0, Color: "#00ADD8", Source: []model.Partial{{Repository: "RepoA", Stars: 8.0}}},
				{Name: "Rust", Stars: 2.0, Color: "#dea584", Source: []model.Partial{{Repository: "RepoA", Stars: 2.0}}},
			},
		},
		{
			name: "Color of the first repository is kept",
			repos: []model.RepositoryRecord{
				repository("one", 0, weighted("Go", 0.0, "#111111")),
				repository("two", 3, weighted("Go", 3.0, "#222222")),
				repository("three", 1, weighted("Go", 1.0, "#333333")),
			},
			expected: []model.AggregatedLanguage{
				{Name: "Go", Stars: 4.0, Color: "#111111", Source: []model.Partial{
					{Repository: "two", Stars: 3.0},
					{Repository: "three", Stars: 1.0},
				}},
			},
		},
		{
			name: "Languages without stars are dropped",
			repos: []model.RepositoryRecord{
				repository("one", 0, weighted("Go", 0.0, ""), weighted("Elm", 0.0, "")),
				repository("two", 1, weighted("Python", 1.0, ""), weighted("Elm", 0.0, "")),
			},
			expected: []model.AggregatedLanguage{
				{Name: "Python", Stars: 1.0, Color: "", Source: []model.Partial{{Repository: "two", Stars: 1.0}}},
			},
		},
		{
			name: "Ties keep merge order",
			repos: []model.RepositoryRecord{
				repository("one", 4, weighted("Rust", 2.0, ""), weighted("Go", 2.0, "")),
				repository("two", 2, weighted("Go", 2.0, "")),
				repository("three", 2, weighted("Rust", 2.0, "")),
			},
			expected: []model.AggregatedLanguage{
				{Name: "Rust", Stars: 4.0, Color: "", Source: []model.Partial{
					{Repository: "three", Stars: 2.0},
					{Repository: "one", Stars: 2.0},
				}},
				{Name: "Go", Stars: 4.0, Color: "", Source: []model.Partial{
					{Repository: "two", Stars: 2.0},
					{Repository: "one", Stars: 2.0},
				}},
			},
		},
		{
			name:     "No repositories",
			repos:    []model.RepositoryRecord{},
			expected: []model.AggregatedLanguage{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			languages := AggregateLanguages(tt.repos)

			assert.Equal(t, tt.expected, languages)
		})
	}
}

func TestAggregateLanguagesOrdering(t *testing.T) {
	repos := []model.RepositoryRecord{
		repository("a", 10, usage("Go", 10, ""), usage("Python", 30, ""), usage("Shell", 1, "")),
		repository("b", 25, usage("Python", 5, ""), usage("Go", 5, "")),
		repository("c", 3, usage("Rust", 100, "")),
		repository("d", 40, usage("Go", 1, ""), usage("Rust", 3, "")),
		repository("e", 12),
	}

	for i := range repos {
		DistributeStars(&repos[i])
	}

	languages := AggregateLanguages(repos)
	require.NotEmpty(t, languages)

	for i, l := range languages {
		assert.Greater(t, l.Stars, 0.0)

		if i > 0 {
			assert.GreaterOrEqual(t, languages[i-1].Stars, l.Stars)
		}

		var sum float64
		for j, p := range l.Source {
			sum += p.Stars

			if j > 0 {
				assert.GreaterOrEqual(t, l.Source[j-1].Stars, p.Stars)
			}
		}

		assert.InDelta(t, l.Stars, sum, 1e-9)
	}
}

func TestBuildAccountResult(t *testing.T) {
	account := model.FetchedAccount{
		Login:       "astronomer",
		DisplayName: "The Astronomer",
		Repositories: []model.RepositoryRecord{
			repository("RepoA", 10, usage("Go", 80, "#00ADD8"), usage("Rust", 20, "#dea584")),
			repository("RepoB", 0, usage("Go", 100, "#00ADD8")),
			repository("RepoC", 5),
		},
	}

	result := BuildAccountResult(account)

	assert.Equal(t, "astronomer", result.Login)
	assert.Equal(t, "The Astronomer", result.Name)
	assert.Equal(t, uint(15), result.Stars)

	require.Len(t, result.Languages, 2)

	goLang := result.Languages[0]
	assert.Equal(t, "Go", goLang.Name)
	assert.Equal(t, "#00ADD8", goLang.Color)
	assert.InDelta(t, 8.0, goLang.Stars, 1e-9)
	require.Len(t, goLang.Source, 1)
	assert.Equal(t, "RepoA", goLang.Source[0].Repository)
	assert.InDelta(t, 8.0, goLang.Source[0].Stars, 1e-9)

	rustLang := result.Languages[1]
	assert.Equal(t, "Rust", rustLang.Name)
	assert.InDelta(t, 2.0, rustLang.Stars, 1e-9)
	require.Len(t, rustLang.Source, 1)
	assert.Equal(t, "RepoA", rustLang.Source[0].Repository)
}
