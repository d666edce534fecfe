package request

import "net/http"

const (
	fieldLongitude   = "longitude"
	fieldLatitude    = "latitude"
	fieldZoomLevel   = "zoom_level"
	fieldHasLocation = "has_location"
)

// LocationUpdate tells the persistence layer what to do with a location block.
// Either all three coordinates are set or none is; in the latter case Store is
// false and Update is true so the caller clears any stored location.
type LocationUpdate struct {
	Store     bool
	Update    bool
	Longitude *string
	Latitude  *string
	ZoomLevel *string
}

// Cleared reports the degraded all-null state.
func (l LocationUpdate) Cleared() bool {
	return l.Longitude == nil || l.Latitude == nil || l.ZoomLevel == nil
}

// LocationKeys returns the longitude, latitude, zoom level and has_location
// field names for prefix.
func LocationKeys(prefix string) (longitude, latitude, zoomLevel, hasLocation string) {
	return prefixed(prefix, fieldLongitude),
		prefixed(prefix, fieldLatitude),
		prefixed(prefix, fieldZoomLevel),
		prefixed(prefix, fieldHasLocation)
}

// ResolveLocation reads the location block named by prefix. A creation
// request (POST) carrying all three coordinates stores them when has_location
// is set; an update request carrying them marks the location for update. Both
// can apply to the same request. An unset has_location flag or any null
// coordinate forces the degraded state regardless of what came before.
func (n *Normalizer) ResolveLocation(in Input, prefix string) LocationUpdate {
	lonKey, latKey, zoomKey, hasKey := LocationKeys(prefix)

	var data LocationUpdate
	hasLocation := ToBoolean(in.Get(hasKey).Raw())
	complete := in.Has(lonKey) && in.Has(latKey) && in.Has(zoomKey)

	if isCreation(in) && complete {
		data.Store = hasLocation
		data.Longitude = coordinate(in.Get(lonKey))
		data.Latitude = coordinate(in.Get(latKey))
		data.ZoomLevel = coordinate(in.Get(zoomKey))
	}

	if isUpdate(in) && complete {
		data.Update = true
		data.Longitude = coordinate(in.Get(lonKey))
		data.Latitude = coordinate(in.Get(latKey))
		data.ZoomLevel = coordinate(in.Get(zoomKey))
	}

	if !hasLocation || data.Cleared() {
		data = LocationUpdate{Update: true}
	}

	n.log.Debug("Resolved location fields",
		"prefix", prefix,
		"method", in.Method(),
		"intent", in.Intent().String(),
		"store", data.Store,
		"update", data.Update,
	)
	return data
}

func isCreation(in Input) bool {
	return in.Method() == http.MethodPost
}

func isUpdate(in Input) bool {
	if in.Intent() != IntentUpdate {
		return false
	}
	switch in.Method() {
	case http.MethodPut, http.MethodPatch, http.MethodPost:
		return true
	}
	return false
}

func coordinate(v Value) *string {
	if v.IsBlank() {
		return nil
	}
	s := stringify(v.Raw())
	if s == "" {
		return nil
	}
	return &s
}

func prefixed(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	return prefix + "_" + suffix
}
