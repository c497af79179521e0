package service

import (
	"context"

	"github.com/cuducos/astronomer/model"
	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/mock"
)

// MockGithubService is a mock implementation of GithubService for testing.
type MockGithubService struct {
	mock.Mock
}

var _ GithubService = &MockGithubService{} // Compile-time check

// FetchRepositories implements the GithubService interface.
func (m *MockGithubService) FetchRepositories(ctx context.Context, login string, status model.RepositoryStatus) (model.FetchedAccount, error) {
	ret := m.Called(ctx, login, status)
	account, _ := ret.Get(0).(model.FetchedAccount)
	return account, ret.Error(1)
}

// HandleRequestErrors implements the GithubService interface.
func (m *MockGithubService) HandleRequestErrors(resp *github.Response, err error) error {
	ret := m.Called(resp, err)
	return ret.Error(0)
}

// MockStarsService is a mock implementation of StarsService for testing.
type MockStarsService struct {
	mock.Mock
}

var _ StarsService = &MockStarsService{} // Compile-time check

// GetAccountResult implements the StarsService interface.
func (m *MockStarsService) GetAccountResult(ctx context.Context, login string, status model.RepositoryStatus) (model.AccountResult, error) {
	ret := m.Called(ctx, login, status)
	result, _ := ret.Get(0).(model.AccountResult)
	return result, ret.Error(1)
}

// Warmup implements the StarsService interface.
func (m *MockStarsService) Warmup(ctx context.Context, logins []string) {
	m.Called(ctx, logins)
}
