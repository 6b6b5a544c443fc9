// Package repostats persists repository popularity counters between runs.
//
// All stats live in one named slot of a [cache.Cache] backend as a JSON
// object keyed by "owner/repo":
//
//	{"vercel/next.js": {"stars": 120000, "forks": 25000, "lastFetched": 1718000000000}}
//
// The slot is read once and written once per refresh pass. A missing or
// corrupt slot loads as an empty [Map]; callers never see a read error.
//
// [Fallbacks] maps an organization to the repository that stands in for it
// when the nominal repository cannot be found.
package repostats
