// Package match finds the closest known name for a misspelt one, so that
// directive and field-name errors can carry a "did you mean" hint.
package match
