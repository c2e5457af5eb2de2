package collector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klimeurt/ghreport/internal/config"
)

func TestClientCreation(t *testing.T) {
	tests := []struct {
		name          string
		config        *config.Config
		expectError   bool
		errorContains string
	}{
		{
			name:        "default API URL",
			config:      &config.Config{GitHubAPIURL: "https://api.github.com/"},
			expectError: false,
		},
		{
			name:        "with token",
			config:      &config.Config{GitHubAPIURL: "https://api.github.com/", GitHubToken: "token123"},
			expectError: false,
		},
		{
			name:          "invalid API URL",
			config:        &config.Config{GitHubAPIURL: "://bad"},
			expectError:   true,
			errorContains: "invalid GitHub API URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Errorf("New() expected error, got nil")
					return
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("New() error = %v, want to contain %v", err, tt.errorContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if client.config != tt.config {
				t.Error("Client config not set correctly")
			}
			if client.ghClient == nil {
				t.Fatal("GitHub client not initialized")
			}
			if client.ghClient.BaseURL.String() != tt.config.GitHubAPIURL {
				t.Errorf("BaseURL = %v, want %v", client.ghClient.BaseURL, tt.config.GitHubAPIURL)
			}
		})
	}
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"login":        "octocat",
			"name":         "The Octocat",
			"bio":          nil,
			"public_repos": 8,
			"followers":    1000,
			"following":    9,
			"location":     "San Francisco",
			"html_url":     "https://github.com/octocat",
			"repos_url":    "https://api.github.com/users/octocat/repos",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	profile, err := client.FetchProfile(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchProfile() unexpected error: %v", err)
	}

	if profile.Login != "octocat" {
		t.Errorf("Login = %v, want %v", profile.Login, "octocat")
	}
	if profile.Name == nil || *profile.Name != "The Octocat" {
		t.Errorf("Name = %v, want %v", profile.Name, "The Octocat")
	}
	if profile.Bio != nil {
		t.Errorf("Bio = %v, want nil", *profile.Bio)
	}
	if profile.PublicRepos != 8 || profile.Followers != 1000 || profile.Following != 9 {
		t.Errorf("counts = %d/%d/%d, want 8/1000/9", profile.PublicRepos, profile.Followers, profile.Following)
	}
	if profile.ReposURL != "https://api.github.com/users/octocat/repos" {
		t.Errorf("ReposURL = %v", profile.ReposURL)
	}
}

func TestFetchProfileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	profile, err := client.FetchProfile(context.Background(), "nobody")
	if err == nil {
		t.Fatal("FetchProfile() expected error, got nil")
	}
	if profile != nil {
		t.Errorf("FetchProfile() returned profile %+v alongside error", profile)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false for %v", err)
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, http.StatusNotFound)
	}
	if !strings.Contains(err.Error(), "failed to fetch profile of nobody") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGetRejectsNonOKSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var v map[string]interface{}
	err := client.Get(context.Background(), "users/octocat", &v)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusAccepted {
		t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, http.StatusAccepted)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("202 must not match ErrNotFound")
	}
}

func TestGetTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, url)

	var v map[string]interface{}
	err := client.Get(context.Background(), "users/octocat", &v)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", fetchErr.StatusCode)
	}
	if fetchErr.Err == nil {
		t.Error("transport error not preserved")
	}
}

func TestFetchRepositoriesAbsoluteURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			createMockRepoJSON("hello-world", "Go", 1600, false),
			createMockRepoJSON("secret", nil, 10, true),
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	repos, err := client.FetchRepositories(context.Background(), server.URL+"/users/octocat/repos")
	if err != nil {
		t.Fatalf("FetchRepositories() unexpected error: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("got %d repositories, want 2", len(repos))
	}

	first := repos[0]
	if first.Name != "hello-world" || first.Stars != 1600 || !first.Public() {
		t.Errorf("first repository = %+v", first)
	}
	if first.Language == nil || *first.Language != "Go" {
		t.Errorf("Language = %v, want Go", first.Language)
	}
	if got := first.UpdatedAt.Format("2006-01-02"); got != "2024-10-02" {
		t.Errorf("UpdatedAt = %v, want 2024-10-02", got)
	}
	if first.URL != "https://api.github.com/repos/octocat/hello-world" {
		t.Errorf("URL = %v", first.URL)
	}

	second := repos[1]
	if second.Language != nil {
		t.Errorf("Language = %v, want nil", *second.Language)
	}
	if second.Public() {
		t.Error("private repository reported as public")
	}
}

func TestFetchRepositoriesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "API rate limit exceeded"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.FetchRepositories(context.Background(), "users/octocat/repos")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to fetch repositories") {
		t.Errorf("Expected 'failed to fetch repositories' error, got: %v", err)
	}
}

// Test helper functions

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := New(&config.Config{GitHubAPIURL: serverURL + "/"})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func createMockRepoJSON(name string, language interface{}, stars int, private bool) map[string]interface{} {
	return map[string]interface{}{
		"name":             name,
		"html_url":         "https://github.com/octocat/" + name,
		"url":              "https://api.github.com/repos/octocat/" + name,
		"stargazers_count": stars,
		"language":         language,
		"updated_at":       "2024-10-02T17:06:15Z",
		"private":          private,
	}
}
