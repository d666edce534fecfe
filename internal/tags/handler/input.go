package handler

import (
	"budgetly/pkg/model"
	"budgetly/pkg/request"
)

const (
	fieldTag         = "tag"
	fieldDate        = "date"
	fieldDescription = "description"
)

func parseTag(n *request.Normalizer, in request.Input) *model.Tag {
	t := &model.Tag{
		Tag:         n.CleanString(in, fieldTag),
		Date:        n.Date(in, fieldDate),
		Description: n.NullableCleanStringKeepNewlines(in, fieldDescription),
	}

	if loc := n.ResolveLocation(in, ""); loc.Store {
		t.Location = toLocation(loc)
	}
	return t
}

// parseTagUpdate leaves absent fields untouched. The location is only
// revisited when the request mentions it; a degraded location block clears
// the stored one.
func parseTagUpdate(n *request.Normalizer, in request.Input) model.TagUpdate {
	var u model.TagUpdate
	if in.Has(fieldTag) {
		u.Tag = model.Replace(n.CleanString(in, fieldTag))
	}
	if in.Has(fieldDate) {
		u.Date = model.ReplaceOrClear(n.Date(in, fieldDate))
	}
	if in.Has(fieldDescription) {
		u.Description = model.ReplaceOrClear(n.NullableCleanStringKeepNewlines(in, fieldDescription))
	}

	if !mentionsLocation(in) {
		return u
	}
	loc := n.ResolveLocation(in, "")
	if !loc.Update {
		return u
	}
	if loc.Cleared() {
		u.Location = model.ReplaceOrClear[model.Location](nil)
	} else {
		u.Location = model.ReplaceOrClear(toLocation(loc))
	}
	return u
}

func mentionsLocation(in request.Input) bool {
	lon, lat, zoom, has := request.LocationKeys("")
	return in.Has(lon) || in.Has(lat) || in.Has(zoom) || in.Has(has)
}

func toLocation(loc request.LocationUpdate) *model.Location {
	if loc.Cleared() {
		return nil
	}
	return &model.Location{
		Longitude: *loc.Longitude,
		Latitude:  *loc.Latitude,
		ZoomLevel: *loc.ZoomLevel,
	}
}
