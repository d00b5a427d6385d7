package model

// StateUnset is the select-box placeholder meaning "no state chosen".
const StateUnset = "State"

// States lists the accepted state codes.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var stateSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(States))
	for _, s := range States {
		m[s] = struct{}{}
	}
	return m
}()

// IsState reports whether code is an accepted state code.
func IsState(code string) bool {
	_, ok := stateSet[code]
	return ok
}
