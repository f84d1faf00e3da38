// Package domain holds types and errors shared across the service layers.
package domain

// KeyPrefix namespaces every key this service writes to the cache store.
const KeyPrefix = "lateral:"

// Date is a calendar date as the recruiting API reports it.
// A zero value in any field means the upstream omitted that component.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}
