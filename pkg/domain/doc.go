// Package domain contains the core forum entities (users, communities, posts
// and comments) together with the read models returned by listings. The types
// are free of infrastructure concerns so storage backends, services and the
// HTTP layer can share them.
package domain
