// Package provider implements key-suggestion backends.
package provider

import "github.com/ZaguanLabs/hanscan"

// KeyProvider is an alias to the main package interface for convenience.
type KeyProvider = hanscan.KeyProvider

// KeyRequest is an alias to the main package type.
type KeyRequest = hanscan.KeyRequest
