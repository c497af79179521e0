package service

import (
	"strings"

	"github.com/cuducos/astronomer/model"
)

// repositoriesQuery lists the repositories owned by a user (forks excluded)
// with the number of bytes written in each language, 100 repositories per page
const repositoriesQuery = `query($login: String!, $cursor: String, $isArchived: Boolean) {
  user(login: $login) {
    name
    repositories(first: 100, after: $cursor, ownerAffiliations: OWNER, isFork: false, isArchived: $isArchived) {
      edges {
        node {
          nameWithOwner
          stargazerCount
          languages(first: 100) {
            edges {
              size
              node {
                name
                color
              }
            }
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

type graphqlVariables struct {
	Login      string  `json:"login"`
	Cursor     *string `json:"cursor,omitempty"`
	IsArchived *bool   `json:"isArchived,omitempty"`
}

type graphqlRequest struct {
	Query     string           `json:"query"`
	Variables graphqlVariables `json:"variables"`
}

func newGraphqlRequest(login string, isArchived *bool, cursor *string) graphqlRequest {
	return graphqlRequest{
		Query: repositoriesQuery,
		Variables: graphqlVariables{
			Login:      login,
			Cursor:     cursor,
			IsArchived: isArchived,
		},
	}
}

type graphqlResponse struct {
	Data struct {
		User *graphqlUser `json:"user"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type graphqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// errorMessages join all graphql errors in a single string
func (r graphqlResponse) errorMessages() string {
	if len(r.Errors) == 0 {
		return "github returned no user"
	}

	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Message)
	}

	return strings.Join(messages, "; ")
}

type graphqlUser struct {
	Name         *string             `json:"name"`
	Repositories graphqlRepositories `json:"repositories"`
}

type graphqlRepositories struct {
	Edges    []graphqlRepositoryEdge `json:"edges"`
	PageInfo graphqlPageInfo         `json:"pageInfo"`
}

type graphqlPageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type graphqlRepositoryEdge struct {
	Node graphqlRepositoryNode `json:"node"`
}

type graphqlRepositoryNode struct {
	NameWithOwner  string `json:"nameWithOwner"`
	StargazerCount uint   `json:"stargazerCount"`
	Languages      struct {
		Edges []graphqlLanguageEdge `json:"edges"`
	} `json:"languages"`
}

type graphqlLanguageEdge struct {
	Size uint `json:"size"`
	Node struct {
		Name  string  `json:"name"`
		Color *string `json:"color"`
	} `json:"node"`
}

// toRepositoryRecord map the language edges 1:1, in the order returned by Github
func (n graphqlRepositoryNode) toRepositoryRecord() model.RepositoryRecord {
	languages := make([]model.LanguageUsage, 0, len(n.Languages.Edges))

	for _, edge := range n.Languages.Edges {
		color := model.DefaultLanguageColor

		if edge.Node.Color != nil && *edge.Node.Color != "" {
			color = *edge.Node.Color
		}

		languages = append(languages, model.LanguageUsage{
			Name:      edge.Node.Name,
			LineCount: edge.Size,
			Color:     color,
		})
	}

	return model.RepositoryRecord{
		Name:           n.NameWithOwner,
		TotalStars:     n.StargazerCount,
		LanguageUsages: languages,
	}
}
