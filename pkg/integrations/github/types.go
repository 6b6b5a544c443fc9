package github

// RepoID identifies a GitHub repository by owner and name.
type RepoID struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// Key returns the "owner/repo" form used as the stats cache key.
func (id RepoID) Key() string {
	return id.Owner + "/" + id.Repo
}

// URL returns the canonical web URL of the repository.
func (id RepoID) URL() string {
	return "https://github.com/" + id.Key()
}

func (id RepoID) String() string { return id.Key() }

// RepoStats holds the popularity counters of a repository.
type RepoStats struct {
	Stars int `json:"stars"`
	Forks int `json:"forks"`
}

// repoResponse is the subset of GET /repos/{owner}/{repo} that we decode.
type repoResponse struct {
	FullName string `json:"full_name"`
	Stars    int    `json:"stargazers_count"`
	Forks    int    `json:"forks_count"`
}
