package service

import (
	"context"
	"time"

	"github.com/cuducos/astronomer/config"
	"github.com/cuducos/astronomer/model"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
)

type StarsService interface {
	GetAccountResult(ctx context.Context, login string, status model.RepositoryStatus) (model.AccountResult, error)
	Warmup(ctx context.Context, logins []string)
}

type starsService struct {
	githubService GithubService
	cache         *ResultCache
	config        config.Config
}

func NewStarsService(config config.Config, githubService GithubService, cache *ResultCache) StarsService {
	return starsService{
		githubService: githubService,
		cache:         cache,
		config:        config,
	}
}

// GetAccountResult return the languages ranking of a login, from cache when possible
func (s starsService) GetAccountResult(ctx context.Context, login string, status model.RepositoryStatus) (model.AccountResult, error) {
	key := CacheKey{Login: login, Status: status}

	return s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (model.AccountResult, error) {
		start := time.Now()

		account, err := s.githubService.FetchRepositories(ctx, login, status)
		if err != nil {
			log.WithError(err).WithField("login", login).Error("unable to fetch repositories from github")
			return model.AccountResult{}, err
		}

		result := BuildAccountResult(account)

		log.WithFields(log.Fields{
			"login":        login,
			"status":       status,
			"repositories": len(account.Repositories),
			"languages":    len(result.Languages),
			"stars":        result.Stars,
			"duration":     time.Since(start).String(),
		}).Info("languages stars computed")

		return result, nil
	})
}

// Warmup compute the results of several logins using goroutines
// errors are only logged, the next request for the login will try again
func (s starsService) Warmup(ctx context.Context, logins []string) {
	swg := sizedwaitgroup.New(s.config.Tasks.MaxParallelTasksAllowed)

	for _, login := range logins {
		swg.Add()

		go func(login string) {
			defer swg.Done()

			if _, err := s.GetAccountResult(ctx, login, model.StatusAll); err != nil {
				log.WithError(err).WithField("login", login).Warning("unable to warm up cache for login")
			}
		}(login)
	}

	log.Debug("waiting for all cache warm up tasks to be finished")
	swg.Wait()
	log.WithField("logins", len(logins)).Info("cache warm up finished")
}
