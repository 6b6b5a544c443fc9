package github

import (
	"regexp"
	"strings"

	"github.com/kitshelf/kitshelf/pkg/errors"
	"github.com/kitshelf/kitshelf/pkg/integrations"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// repoURLPatterns are tried in order; the first match wins.
var repoURLPatterns = []*regexp.Regexp{
	// github.com/owner/repo, optionally followed by "/", ".git", a query or a fragment
	regexp.MustCompile(`(?:^|//|@)(?:www\.)?github\.com/([^/?#\s]+)/([^/?#\s]+)/?(?:[?#].*)?$`),
	// github.com/owner/repo/tree/main and other deeper paths
	regexp.MustCompile(`(?:^|//|@)(?:www\.)?github\.com/([^/?#\s]+)/([^/?#\s]+)/`),
}

// ParseRepoURL resolves a GitHub repository URL into a [RepoID].
//
// The scheme, a "www." host prefix, a trailing slash, a ".git" suffix and
// any query string are ignored. SSH and git+https forms are accepted.
// URLs that do not contain a github.com/owner/repo path return an error
// with code [errors.ErrCodeUnresolvableRepository].
func ParseRepoURL(raw string) (RepoID, error) {
	s := integrations.NormalizeRepoURL(raw)
	for _, p := range repoURLPatterns {
		m := p.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		id := RepoID{Owner: m[1], Repo: cleanRepo(m[2])}
		if err := validateRepoID(id); err != nil {
			return RepoID{}, errors.Wrap(errors.ErrCodeUnresolvableRepository, err, "cannot resolve %q", raw)
		}
		return id, nil
	}
	return RepoID{}, errors.New(errors.ErrCodeUnresolvableRepository, "cannot resolve %q", raw)
}

// ParseRepoRef parses an "owner/repo" string and validates both parts.
func ParseRepoRef(ref string) (RepoID, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok {
		return RepoID{}, errors.New(errors.ErrCodeInvalidInput, "invalid repo %q: use owner/repo", ref)
	}
	id := RepoID{Owner: owner, Repo: cleanRepo(repo)}
	if err := validateRepoID(id); err != nil {
		return RepoID{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid repo %q", ref)
	}
	return id, nil
}

func cleanRepo(repo string) string {
	for {
		trimmed := strings.TrimSuffix(strings.TrimSuffix(repo, "/"), ".git")
		if trimmed == repo {
			return repo
		}
		repo = trimmed
	}
}

func validateRepoID(id RepoID) error {
	if !validOwner.MatchString(id.Owner) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid owner %q", id.Owner)
	}
	if !validRepo.MatchString(id.Repo) || id.Repo == "." || id.Repo == ".." {
		return errors.New(errors.ErrCodeInvalidInput, "invalid repo name %q", id.Repo)
	}
	return nil
}
