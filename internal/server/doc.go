// Package server provides the read-only HTTP view of the roster.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Roster Handler
//
// [RosterHandler] serves JSON snapshots of the three collections and the dashboard counts:
//
//	GET /students        GET /students/{id}
//	GET /courses         GET /courses/{id}
//	GET /instructors     GET /instructors/{id}
//	GET /stats
//
// Every read goes through the store's read lock, so requests served concurrently never see a half-committed collection.
// Nothing in this package mutates records; edits go through the CLI or TUI.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
