package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cuducos/astronomer/config"
	"github.com/cuducos/astronomer/model"
	"github.com/google/go-github/v66/github"

	log "github.com/sirupsen/logrus"

	"golang.org/x/time/rate"
)

type GithubService interface {
	FetchRepositories(ctx context.Context, login string, status model.RepositoryStatus) (model.FetchedAccount, error)

	HandleRequestErrors(resp *github.Response, err error) error
}

type githubService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
	config            config.Config
}

// the graphql API has its own rate limit (5000 points per hour for authenticated users)
// each page costs at least one point, so the local rate limiter consume one token per page
// a nil rate limiter means no local limit at all
func NewGithubService(config config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	if rateLimiter == nil {
		rateLimiter = rate.NewLimiter(rate.Inf, 0)
	}

	return githubService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
		config:            config,
	}
}

// FetchRepositories load all repositories of a user, following the cursor until the last page
// pages are loaded one after the other because each request needs the cursor of the previous one
// if a single page fails, the whole fetch fails and nothing is returned
func (s githubService) FetchRepositories(ctx context.Context, login string, status model.RepositoryStatus) (model.FetchedAccount, error) {
	account := model.FetchedAccount{
		Login:        login,
		DisplayName:  login,
		Repositories: make([]model.RepositoryRecord, 0),
	}

	var cursor *string
	pages := 0

	for {
		user, err := s.fetchPage(ctx, newGraphqlRequest(login, status.IsArchived(), cursor))
		if err != nil {
			return model.FetchedAccount{}, err
		}

		pages += 1

		for _, edge := range user.Repositories.Edges {
			account.Repositories = append(account.Repositories, edge.Node.toRepositoryRecord())
		}

		if user.Name != nil && *user.Name != "" {
			account.DisplayName = *user.Name
		}

		if !user.Repositories.PageInfo.HasNextPage {
			break
		}

		// without cursor we would load the first page again and again
		if user.Repositories.PageInfo.EndCursor == nil {
			return model.FetchedAccount{}, &model.SerializationError{
				Err: fmt.Errorf("page %d reports a next page without end cursor", pages),
			}
		}

		cursor = user.Repositories.PageInfo.EndCursor
	}

	log.WithFields(log.Fields{
		"login":        login,
		"status":       status,
		"pages":        pages,
		"repositories": len(account.Repositories),
	}).Debug("all repositories pages loaded from github")

	return account, nil
}

// fetchPage execute a single graphql request and return the user node
func (s githubService) fetchPage(ctx context.Context, query graphqlRequest) (*graphqlUser, error) {
	if !s.githubRateLimiter.Allow() {
		log.Warning("the Github rate limit has been reached. Wait until the limit reset")
		return nil, model.ErrRateLimitReached
	}

	log.WithFields(log.Fields{
		"login":      query.Variables.Login,
		"cursor":     query.Variables.Cursor,
		"isArchived": query.Variables.IsArchived,
	}).Debug("fetch repositories page from github")

	req, err := s.githubClient.NewRequest(http.MethodPost, "graphql", query)
	if err != nil {
		return nil, &model.SerializationError{Err: err}
	}

	var page graphqlResponse

	resp, err := s.githubClient.Do(ctx, req, &page)
	if err != nil {
		return nil, s.HandleRequestErrors(resp, err)
	}

	// graphql answers 200 even for unknown users, errors are listed in the body
	if page.Data.User == nil {
		body := page.errorMessages()
		log.WithField("errors", body).Error("github returned no user for the query")

		return nil, &model.UpstreamStatusError{StatusCode: resp.StatusCode, Body: body}
	}

	return page.Data.User, nil
}

// HandleRequestErrors manage errors including github rate limit errors at the same location
// If error is a rate limit error, this function will update the local rate limiter to consume all available requests
// this can help us to keep the local rate limiter up to date
func (s githubService) HandleRequestErrors(resp *github.Response, err error) error {
	var rateLimitErr *github.RateLimitError

	if errors.As(err, &rateLimitErr) {
		s.githubRateLimiter.ReserveN(time.Now(), s.githubRateLimiter.Burst())
		log.Warning("the Github rate limit has been reached. Wait until the limit reset")
	}

	if resp == nil || resp.Response == nil {
		log.WithError(err).Error("unable to reach github")
		return &model.TransportError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body := responseBody(resp, err)

		log.WithFields(log.Fields{
			"statusCode": resp.StatusCode,
			"body":       body,
		}).Error("github answered with a non success status")

		return &model.UpstreamStatusError{StatusCode: resp.StatusCode, Body: body}
	}

	log.WithError(err).Error("unable to decode github response")
	return &model.SerializationError{Err: err}
}

// go-github re-populates the body after checking the status, so it can be read again here
func responseBody(resp *github.Response, err error) string {
	if resp.Body != nil {
		if body, readErr := io.ReadAll(resp.Body); readErr == nil && len(body) > 0 {
			return string(body)
		}
	}

	return err.Error()
}
