// Package github resolves repository URLs and fetches popularity stats
// from the GitHub REST API.
//
// # Resolving
//
// [ParseRepoURL] turns a repository URL into a [RepoID]. It tolerates a
// trailing slash, a ".git" suffix, query strings and SSH-style URLs:
//
//	id, err := github.ParseRepoURL("https://github.com/vercel/next.js.git/")
//	// id == RepoID{Owner: "vercel", Repo: "next.js"}
//
// # Fetching
//
// [Client.FetchStats] performs one GET /repos/{owner}/{repo} request and
// returns the stargazer and fork counts:
//
//	client := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//	stats, err := client.FetchStats(ctx, id)
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // renamed, deleted or umbrella organization
//	}
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour.
//
// # Retries
//
// By default a fetch is attempted once. [WithAttempts] enables bounded
// retries of transient failures (5xx responses and transport errors).
// Not-found and rate-limited responses are never retried.
package github
