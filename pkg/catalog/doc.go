// Package catalog defines the starter-kit catalog and its query operations.
//
// A [Catalog] is an ordered list of [Entry] values. Each entry carries
// presentation fields (name, description, tags, category) plus the
// popularity counters that the enrich package refreshes from GitHub.
//
// Catalogs come from the built-in seed ([Default]) or from a TOML or JSON
// file ([Load]):
//
//	[[kits]]
//	id = 1
//	name = "Next.js Starter Kit"
//	category = "web"
//	tags = ["next.js", "react"]
//	repo_url = "https://github.com/vercel/next.js"
//
// [Catalog.Query] filters, sorts and paginates the catalog for the CLI and
// HTTP API.
package catalog
