package model

// HelpRequest is a citizen-submitted distress report. Coordinates are WGS84
// degrees; Timestamp is client-supplied milliseconds since the Unix epoch.
// Records carry no identity, so indistinguishable duplicates are permitted.
type HelpRequest struct {
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lng       float64 `json:"lng" validate:"min=-180,max=180"`
	Timestamp float64 `json:"timestamp" validate:"gt=0"`
}

// AgeMillis returns how old the request is relative to nowMillis.
func (r HelpRequest) AgeMillis(nowMillis float64) float64 {
	return nowMillis - r.Timestamp
}
