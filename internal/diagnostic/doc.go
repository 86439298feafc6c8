// Package diagnostic collects the problems found while building a record
// contract, so that a single Build call reports every bad field at once.
package diagnostic
