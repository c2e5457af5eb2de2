package collector

import "github.com/google/go-github/v57/github"

// Profile represents a GitHub user profile. Name, Bio and Location are nil
// when the API reports them as null.
type Profile struct {
	Name        *string
	Login       string
	Bio         *string
	PublicRepos int
	Followers   int
	Following   int
	Location    *string
	HTMLURL     string
	ReposURL    string
}

func profileFromGitHub(u *github.User) *Profile {
	return &Profile{
		Name:        u.Name,
		Login:       u.GetLogin(),
		Bio:         u.Bio,
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		Location:    u.Location,
		HTMLURL:     u.GetHTMLURL(),
		ReposURL:    u.GetReposURL(),
	}
}
