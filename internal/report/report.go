package report

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/klimeurt/ghreport/internal/collector"
	"github.com/klimeurt/ghreport/internal/config"
)

// Fetcher is the part of collector.Client a Reporter needs
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*collector.Profile, error)
	FetchRepositories(ctx context.Context, reposURL string) ([]collector.Repository, error)
}

// Options shape the aggregate sections of a report
type Options struct {
	TopLanguages int
	TopStarred   int
	// PercentBase is config.PercentBaseProfile or config.PercentBaseListed
	PercentBase string
}

// DefaultOptions returns two languages and three starred repositories, with
// percentages taken against the profile's public repository count
func DefaultOptions() Options {
	return Options{
		TopLanguages: 2,
		TopStarred:   3,
		PercentBase:  config.PercentBaseProfile,
	}
}

// OptionsFromConfig builds Options from the loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TopLanguages: cfg.TopLanguages,
		TopStarred:   cfg.TopStarred,
		PercentBase:  cfg.PercentBase,
	}
}

// RepositorySection holds the public repositories of a user and the tallies
// accumulated while walking them
type RepositorySection struct {
	Repositories []collector.Repository
	Languages    []string
	Stars        *StarTally
}

// Report is everything needed to render one user report
type Report struct {
	Profile      *collector.Profile
	Repositories *RepositorySection
	Languages    []LanguageShare
	Starred      []StarEntry
}

// Reporter builds reports from GitHub data
type Reporter struct {
	fetcher Fetcher
	opts    Options
}

// NewReporter creates a new Reporter instance
func NewReporter(fetcher Fetcher, opts Options) *Reporter {
	return &Reporter{
		fetcher: fetcher,
		opts:    opts,
	}
}

// Profile fetches the profile of username and returns it as fetched
func (r *Reporter) Profile(ctx context.Context, username string) (*collector.Profile, error) {
	return r.fetcher.FetchProfile(ctx, username)
}

// Repositories fetches the list behind reposURL, keeps the public repositories
// in API order and tallies their languages and stars
func (r *Reporter) Repositories(ctx context.Context, reposURL string) (*RepositorySection, error) {
	repos, err := r.fetcher.FetchRepositories(ctx, reposURL)
	if err != nil {
		return nil, err
	}

	section := &RepositorySection{
		Repositories: make([]collector.Repository, 0, len(repos)),
		Languages:    make([]string, 0, len(repos)),
		Stars:        NewStarTally(),
	}
	for _, repo := range repos {
		if !repo.Public() {
			continue
		}
		section.Repositories = append(section.Repositories, repo)
		section.Languages = append(section.Languages, stringOrNull(repo.Language))
		section.Stars.Record(repo.Name, repo.Stars)
	}
	return section, nil
}

// Build runs the whole pipeline for username. The first fetch failure aborts
// the report.
func (r *Reporter) Build(ctx context.Context, username string) (*Report, error) {
	log.Info("Building report", "user", username)

	profile, err := r.Profile(ctx, username)
	if err != nil {
		return nil, err
	}

	section, err := r.Repositories(ctx, profile.ReposURL)
	if err != nil {
		return nil, err
	}

	total := profile.PublicRepos
	if r.opts.PercentBase == config.PercentBaseListed {
		total = len(section.Repositories)
	}
	if total != len(section.Repositories) {
		log.Debug("Public repository count differs from listed repositories",
			"profile", profile.PublicRepos, "listed", len(section.Repositories))
	}

	report := &Report{
		Profile:      profile,
		Repositories: section,
		Languages:    TopLanguages(section.Languages, r.opts.TopLanguages, total),
		Starred:      TopStarred(section.Stars, r.opts.TopStarred),
	}

	log.Info("Report built", "user", username, "repositories", len(section.Repositories))
	return report, nil
}

// Run builds the report for username and renders it to w. Nothing is written
// when building fails.
func (r *Reporter) Run(ctx context.Context, username string, w io.Writer) error {
	report, err := r.Build(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to build report for %s: %w", username, err)
	}
	if err := Render(w, report); err != nil {
		return fmt.Errorf("failed to render report for %s: %w", username, err)
	}
	return nil
}

func stringOrNull(s *string) string {
	if s == nil {
		return NullMarker
	}
	return *s
}
