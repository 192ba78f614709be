//go:build release

package board

// See assert.go.
const debugAssertions = false
