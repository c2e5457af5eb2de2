package report

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/klimeurt/ghreport/internal/collector"
)

// Render writes the text report to w
func Render(w io.Writer, r *Report) error {
	if r == nil || r.Profile == nil {
		return errors.New("report has no profile")
	}

	bw := bufio.NewWriter(w)

	writeProfile(bw, r.Profile)
	writeRepositories(bw, r.Repositories)
	writeLanguages(bw, r.Languages)
	writeStarred(bw, r.Starred)

	return bw.Flush()
}

// RenderString renders the report into a string
func RenderString(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeProfile(w io.Writer, p *collector.Profile) {
	fmt.Fprintf(w, "Name: %s\n", stringOrNull(p.Name))
	fmt.Fprintf(w, "    Username: %s\n", p.Login)
	fmt.Fprintf(w, "    Bio: %s\n", stringOrNull(p.Bio))
	fmt.Fprintf(w, "    Public Repos: %d\n", p.PublicRepos)
	fmt.Fprintf(w, "    Followers: %d\n", p.Followers)
	fmt.Fprintf(w, "    Following: %d\n", p.Following)
	fmt.Fprintf(w, "    Location: %s\n", stringOrNull(p.Location))
	fmt.Fprintf(w, "    Profile URL: %s\n", p.HTMLURL)
	fmt.Fprintln(w)
}

func writeRepositories(w io.Writer, s *RepositorySection) {
	fmt.Fprintln(w, "## Repositories")
	fmt.Fprintln(w)
	if s == nil {
		return
	}
	for _, repo := range s.Repositories {
		fmt.Fprintf(w, "*** %s\n", repo.Name)
		fmt.Fprintf(w, "- View Repo %s\n", repo.HTMLURL)
		fmt.Fprintf(w, "- Stars %d\n", repo.Stars)
		fmt.Fprintf(w, "- Language %s\n", stringOrNull(repo.Language))
		fmt.Fprintf(w, "- Last Updated %s\n", lastUpdated(repo))
		fmt.Fprintf(w, "url = '%s'\n", repo.URL)
		fmt.Fprintln(w)
	}
}

func writeLanguages(w io.Writer, shares []LanguageShare) {
	fmt.Fprintln(w, "## Most Used Languages")
	for _, share := range shares {
		fmt.Fprintf(w, "- %s (%s%%)\n", share.Language, strconv.FormatFloat(share.Percent, 'f', -1, 64))
	}
	fmt.Fprintln(w)
}

func writeStarred(w io.Writer, entries []StarEntry) {
	fmt.Fprintln(w, "## Most Starred Repos")
	fmt.Fprintln(w)
	for _, entry := range entries {
		fmt.Fprintf(w, "- %s - %sK starts\n", entry.Name, thousands(entry.Stars))
	}
	fmt.Fprintln(w)
}

// lastUpdated is the date part of the updated_at timestamp
func lastUpdated(repo collector.Repository) string {
	if repo.UpdatedAt.IsZero() {
		return NullMarker
	}
	return repo.UpdatedAt.UTC().Format(time.DateOnly)
}

func thousands(stars int) string {
	return strconv.FormatFloat(float64(stars)/1000, 'f', 1, 64)
}
