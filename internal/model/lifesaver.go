package model

// Lifesaver is one rescue-equipment record from the catalog. Beyond the
// coordinates the fields are free-form (name, type, installer, ...) and are
// passed through to clients unchanged, so the record stays a raw JSON object.
type Lifesaver map[string]any

// coord reads a numeric field, tolerating the float64/int decoding split
// that encoding/json produces for untyped documents.
func (l Lifesaver) coord(key string) (float64, bool) {
	v, ok := l[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Lat returns the record's latitude, or false if absent or non-numeric.
func (l Lifesaver) Lat() (float64, bool) { return l.coord("lat") }

// Lng returns the record's longitude, or false if absent or non-numeric.
func (l Lifesaver) Lng() (float64, bool) { return l.coord("lng") }

// Normalize renames a legacy "lon" field to "lng". When both keys are
// present "lng" wins and "lon" is dropped. Applying it twice is the same as
// applying it once; a record with neither key is returned untouched.
func (l Lifesaver) Normalize() Lifesaver {
	v, hasLon := l["lon"]
	if !hasLon {
		return l
	}
	out := make(Lifesaver, len(l))
	for k, val := range l {
		if k == "lon" {
			continue
		}
		out[k] = val
	}
	if _, hasLng := l["lng"]; !hasLng {
		out["lng"] = v
	}
	return out
}

// NormalizeAll applies Normalize to every record of a catalog.
func NormalizeAll(catalog []Lifesaver) []Lifesaver {
	out := make([]Lifesaver, len(catalog))
	for i, l := range catalog {
		out[i] = l.Normalize()
	}
	return out
}
