// Package api provides the HTTP layer of the feed merger.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and typed handlers.
//
// # Layout
//
// - server.go: Huma API configuration and middleware chain
// - handlers/: category, source and health handlers
// - dto/: response shapes and the Atom renderer
// - middleware/: request logging and per-IP rate limiting
//
// # Endpoints
//
//	GET /feeds/{name}/atom.xml   merged category feed as Atom 1.0
//	GET /feeds/{name}/feed.json  the same feed as JSON
//	GET /feeds/source?url=...    one configured source as Atom 1.0
//	GET /categories              configured categories
//	GET /health                  liveness
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:            logger,
//	    RequestsPerMinute: 120,
//	})
//	handlers.NewCategoryHandler(aggregator, renderCache, 30*time.Second, logger).RegisterRoutes(humaAPI)
//	handlers.NewHealthHandler(aggregator).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Errors
//
// Errors use the RFC 7807 problem format. Unknown categories and sources map
// to 404, invalid input to 400 and upstream fetch or parse failures to 502.
package api
