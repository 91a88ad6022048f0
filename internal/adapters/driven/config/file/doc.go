// Package file provides the TOML configuration store.
//
// The configuration lives in ~/.portal-search/config.toml:
//
//	[catalog]
//	path = "/srv/portal/catalogo.toml"
//	watch = true
//
//	[feed]
//	path = "https://portal.example.com/feed.xml"
//	refresh_minutes = 30
//
//	[database]
//	dir = "/srv/portal/data"
//
//	[log]
//	verbose = false
package file
