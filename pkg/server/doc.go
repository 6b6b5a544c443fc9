// Package server exposes the enriched catalog as a read-only JSON API.
//
// Routes:
//
//	GET  /api/kits          filtered, sorted, paginated kits
//	GET  /api/kits/{id}     one kit
//	GET  /api/categories    distinct categories
//	GET  /api/status        loading flag and last pass summary
//	POST /api/refresh       queue an extra refresh pass
//	GET  /healthz           liveness
//
// /api/kits accepts search, category, sort, page, per_page and featured
// query parameters with the semantics of [catalog.Query].
package server
