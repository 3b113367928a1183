package models

// Currency is a value object threaded explicitly through pricing and fetch
// calls. There is no ambient "selected currency" state anywhere in the
// process; a switch on the client side is just a request with a different
// code, which misses every per-currency cache key and forces a fresh fetch.
type Currency struct {
	Code       string `json:"code"`
	Symbol     string `json:"symbol"`
	MinorUnits int32  `json:"minor_units"`
}
