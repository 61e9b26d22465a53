package models

// AddressLookup is the outcome of a reverse-geocode call. Resolved=false
// means the lookup failed or returned nothing; the display layer substitutes
// a placeholder. Failures never propagate into the pricing core.
type AddressLookup struct {
	Address  string `json:"address"`
	Resolved bool   `json:"resolved"`
}
