package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v57/github"
	"github.com/klimeurt/ghreport/internal/config"
	"golang.org/x/oauth2"
)

// Client performs the GitHub GET requests behind a report
type Client struct {
	config   *config.Config
	ghClient *github.Client
}

// New creates a new Client instance
func New(cfg *config.Config) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	if cfg.GitHubToken != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.GitHubToken},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = cfg.HTTPTimeout
	}
	ghClient := github.NewClient(httpClient)

	baseURL, err := url.Parse(cfg.GitHubAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.GitHubAPIURL, err)
	}
	ghClient.BaseURL = baseURL

	return &Client{
		config:   cfg,
		ghClient: ghClient,
	}, nil
}

// Get issues a GET for rawURL, absolute or relative to the API base URL, and
// decodes a 200 response body into v. Everything else is a *FetchError.
func (c *Client) Get(ctx context.Context, rawURL string, v interface{}) error {
	req, err := c.ghClient.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return &FetchError{URL: rawURL, Err: err}
	}
	target := req.URL.String()

	resp, err := c.ghClient.Do(ctx, req, v)
	if err != nil {
		fetchErr := &FetchError{URL: target, Err: err}
		if resp != nil {
			fetchErr.StatusCode = resp.StatusCode
		}
		log.Error("Failed to retrieve data", "url", target, "status", fetchErr.StatusCode)
		return fetchErr
	}
	if resp.StatusCode != http.StatusOK {
		log.Error("Failed to retrieve data", "url", target, "status", resp.StatusCode)
		return &FetchError{URL: target, StatusCode: resp.StatusCode}
	}

	log.Debug("Fetched", "url", target)
	return nil
}

// FetchProfile fetches the public profile of username
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	var user github.User
	if err := c.Get(ctx, "users/"+url.PathEscape(username), &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile of %s: %w", username, err)
	}
	return profileFromGitHub(&user), nil
}

// FetchRepositories fetches the single page of repositories behind reposURL,
// in the order the API returns them
func (c *Client) FetchRepositories(ctx context.Context, reposURL string) ([]Repository, error) {
	var repos []*github.Repository
	if err := c.Get(ctx, reposURL, &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}

	result := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		result = append(result, repositoryFromGitHub(repo))
	}
	return result, nil
}
