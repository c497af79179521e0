package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var ErrMissingGraphQLRateLimit = errors.New("github returned no graphql rate limit")

// NewGithubRateLimiter setup a local rate limiter using the current graphql rate limit from github
// requests already consumed (by other clients using the same token) are consumed locally too
func NewGithubRateLimiter(ctx context.Context, githubClient *github.Client) (*rate.Limiter, error) {
	log.Debug("loading current rate limit from github")

	rateLimits, _, err := githubClient.RateLimit.Get(ctx)
	if err != nil {
		return nil, err
	}

	graphqlLimits := rateLimits.GetGraphQL()
	if graphqlLimits == nil {
		return nil, ErrMissingGraphQLRateLimit
	}

	log.WithFields(log.Fields{
		"totalAvailable":    graphqlLimits.Limit,
		"remainingRequests": graphqlLimits.Remaining,
	}).Debug("will setup local rate limiter with graphql rate limits infos from github")

	// the whole limit is restored within an hour
	rateLimiter := rate.NewLimiter(rate.Limit(float64(graphqlLimits.Limit)/time.Hour.Seconds()), graphqlLimits.Limit)

	if !rateLimiter.AllowN(time.Now(), graphqlLimits.Limit-graphqlLimits.Remaining) {
		return nil, errors.New("unable to configure the github rate limiter")
	}

	return rateLimiter, nil
}
