package collector

import (
	"time"

	"github.com/google/go-github/v57/github"
)

// Repository represents a GitHub repository as listed for a user
type Repository struct {
	Name      string
	HTMLURL   string
	Stars     int
	Language  *string
	UpdatedAt time.Time
	URL       string
	Private   bool
}

// Public reports whether the repository is visible to everyone
func (r Repository) Public() bool {
	return !r.Private
}

func repositoryFromGitHub(repo *github.Repository) Repository {
	return Repository{
		Name:      repo.GetName(),
		HTMLURL:   repo.GetHTMLURL(),
		Stars:     repo.GetStargazersCount(),
		Language:  repo.Language,
		UpdatedAt: repo.GetUpdatedAt().Time,
		URL:       repo.GetURL(),
		Private:   repo.GetPrivate(),
	}
}
