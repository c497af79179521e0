package service

import (
	"context"
	"testing"
	"time"

	"github.com/cuducos/astronomer/config"
	"github.com/cuducos/astronomer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fetchedAccount(login string) model.FetchedAccount {
	return model.FetchedAccount{
		Login:       login,
		DisplayName: "Display " + login,
		Repositories: []model.RepositoryRecord{
			repository(login+"/RepoA", 10, usage("Go", 80, "#00ADD8"), usage("Rust", 20, "#dea584")),
			repository(login+"/RepoB", 0, usage("Go", 100, "#00ADD8")),
		},
	}
}

func newTestStarsService(githubService GithubService) StarsService {
	conf := config.GetDefault()
	return NewStarsService(*conf, githubService, NewResultCache(time.Hour, 0))
}

func TestGetAccountResult(t *testing.T) {
	githubService := &MockGithubService{}
	githubService.On("FetchRepositories", mock.Anything, "cuducos", model.StatusAll).Return(fetchedAccount("cuducos"), nil).Once()

	svc := newTestStarsService(githubService)

	for i := 0; i < 2; i++ {
		result, err := svc.GetAccountResult(context.Background(), "cuducos", model.StatusAll)

		require.NoError(t, err)
		assert.Equal(t, "cuducos", result.Login)
		assert.Equal(t, "Display cuducos", result.Name)
		assert.Equal(t, uint(10), result.Stars)
		require.Len(t, result.Languages, 2)
		assert.Equal(t, "Go", result.Languages[0].Name)
		assert.Equal(t, "Rust", result.Languages[1].Name)
	}

	githubService.AssertExpectations(t)
	githubService.AssertNumberOfCalls(t, "FetchRepositories", 1)
}

func TestGetAccountResultStatusIsPartOfTheKey(t *testing.T) {
	githubService := &MockGithubService{}
	githubService.On("FetchRepositories", mock.Anything, "cuducos", model.StatusAll).Return(fetchedAccount("cuducos"), nil).Once()
	githubService.On("FetchRepositories", mock.Anything, "cuducos", model.StatusArchived).Return(model.FetchedAccount{Login: "cuducos", DisplayName: "cuducos"}, nil).Once()

	svc := newTestStarsService(githubService)

	all, err := svc.GetAccountResult(context.Background(), "cuducos", model.StatusAll)
	require.NoError(t, err)

	archived, err := svc.GetAccountResult(context.Background(), "cuducos", model.StatusArchived)
	require.NoError(t, err)

	assert.Equal(t, uint(10), all.Stars)
	assert.Equal(t, uint(0), archived.Stars)
	assert.Empty(t, archived.Languages)
	githubService.AssertExpectations(t)
}

func TestGetAccountResultErrorIsNotCached(t *testing.T) {
	githubService := &MockGithubService{}
	githubService.On("FetchRepositories", mock.Anything, "cuducos", model.StatusAll).Return(model.FetchedAccount{}, &model.UpstreamStatusError{StatusCode: 502, Body: "down"}).Once()
	githubService.On("FetchRepositories", mock.Anything, "cuducos", model.StatusAll).Return(fetchedAccount("cuducos"), nil).Once()

	svc := newTestStarsService(githubService)

	_, err := svc.GetAccountResult(context.Background(), "cuducos", model.StatusAll)

	var statusErr *model.UpstreamStatusError
	assert.ErrorAs(t, err, &statusErr)

	result, err := svc.GetAccountResult(context.Background(), "cuducos", model.StatusAll)

	require.NoError(t, err)
	assert.Equal(t, uint(10), result.Stars)
	githubService.AssertExpectations(t)
}

func TestWarmup(t *testing.T) {
	logins := []string{"cuducos", "octocat", "ghost"}

	githubService := &MockGithubService{}
	githubService.On("FetchRepositories", mock.Anything, "cuducos", model.StatusAll).Return(fetchedAccount("cuducos"), nil).Once()
	githubService.On("FetchRepositories", mock.Anything, "octocat", model.StatusAll).Return(fetchedAccount("octocat"), nil).Once()
	githubService.On("FetchRepositories", mock.Anything, "ghost", model.StatusAll).Return(model.FetchedAccount{}, model.ErrRateLimitReached).Once()

	svc := newTestStarsService(githubService)
	svc.Warmup(context.Background(), logins)

	githubService.AssertExpectations(t)

	// warmed up logins are served from cache
	result, err := svc.GetAccountResult(context.Background(), "octocat", model.StatusAll)

	require.NoError(t, err)
	assert.Equal(t, "octocat", result.Login)
	githubService.AssertNumberOfCalls(t, "FetchRepositories", 3)
}
