// Package dataset loads the bundled regional registers (Scotland, Northern
// Ireland, Ireland) into immutable in-memory collections and answers
// filter queries over them.
//
// Loading happens exactly once at process start; the resulting Snapshot is
// read-only for the process lifetime, so concurrent request handlers need
// no locking.
package dataset

// Source tags which regulator a normalized record came from.
type Source string

const (
	SourceCQC        Source = "CQC"
	SourceScotlandCI Source = "Care Inspectorate"
	SourceRQIA       Source = "RQIA"
	SourceHIQA       Source = "HIQA"
)

// ProviderRecord is the normalized shape every regional source maps into.
// Records are immutable once produced: loaders build them, queries copy
// slices of them, nothing mutates them in place.
type ProviderRecord struct {
	Source         Source `json:"source"`
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	Town           string `json:"town,omitempty"`
	Postcode       string `json:"postcode,omitempty"`
	Area           string `json:"area,omitempty"` // council area / district / county
	Region         string `json:"region"`
	ServiceType    string `json:"serviceType,omitempty"`
	Subtype        string `json:"subtype,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Provider       string `json:"provider,omitempty"`
	PersonInCharge string `json:"personInCharge,omitempty"`
	Beds           *int   `json:"beds,omitempty"`
	Status         string `json:"registrationStatus,omitempty"`
	RegisteredAt   string `json:"registrationDate,omitempty"`
	ExpiresAt      string `json:"expiryDate,omitempty"`
	LastInspection string `json:"lastInspection,omitempty"`
}
