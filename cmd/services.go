package cmd

import (
	"context"
	"net/http"

	"github.com/cuducos/astronomer/config"
	"github.com/cuducos/astronomer/service"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// newGithubClient setup github client with the authorization token
// we do here and pass the client to Github service to easily improve tests with mock client
func newGithubClient(cfg config.Config) *github.Client {
	githubClient := github.NewClient(&http.Client{Timeout: cfg.RequestTimeout()})

	if cfg.Github.Token != "" {
		log.Debug("will setup github client with authorization token")
		githubClient = githubClient.WithAuthToken(cfg.Github.Token)
	}

	return githubClient
}

// newStarsService wire the github service, the local rate limiter and the results cache
func newStarsService(ctx context.Context, cfg config.Config, githubClient *github.Client) service.StarsService {
	var rateLimiter *rate.Limiter

	if cfg.Github.UseLocalRateLimiter {
		limiter, err := service.NewGithubRateLimiter(ctx, githubClient)

		if err != nil {
			log.WithError(err).Warning("unable to load github rate limits. local rate limiter disabled")
		} else {
			rateLimiter = limiter
		}
	}

	githubService := service.NewGithubService(cfg, githubClient, rateLimiter)
	resultCache := service.NewResultCache(cfg.CacheTTL(), cfg.Cache.MaxEntries)

	return service.NewStarsService(cfg, githubService, resultCache)
}
