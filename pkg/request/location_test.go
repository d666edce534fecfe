package request

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(hasLocation any) map[string]any {
	return map[string]any{
		"longitude":    "4.895168",
		"latitude":     "52.370216",
		"zoom_level":   "12",
		"has_location": hasLocation,
	}
}

func degraded() LocationUpdate {
	return LocationUpdate{Store: false, Update: true}
}

func TestResolveLocation_DisabledFlagAlwaysDegrades(t *testing.T) {
	n := newTestNormalizer()

	requests := []struct {
		method string
		intent Intent
	}{
		{http.MethodPost, IntentCreate},
		{http.MethodPut, IntentUpdate},
		{http.MethodPatch, IntentUpdate},
		{http.MethodPost, IntentUpdate},
		{http.MethodGet, IntentUnknown},
	}

	for _, flag := range []any{"false", "0", 0, "no", nil} {
		for _, r := range requests {
			in := NewMapInput(r.method, r.intent, coords(flag))
			assert.Equal(t, degraded(), n.ResolveLocation(in, ""), "method %s intent %s flag %#v", r.method, r.intent, flag)
		}
	}
}

func TestResolveLocation_CreateStores(t *testing.T) {
	n := newTestNormalizer()
	in := NewMapInput(http.MethodPost, IntentCreate, coords("true"))

	got := n.ResolveLocation(in, "")

	assert.True(t, got.Store)
	assert.False(t, got.Update)
	require.NotNil(t, got.Longitude)
	require.NotNil(t, got.Latitude)
	require.NotNil(t, got.ZoomLevel)
	assert.Equal(t, "4.895168", *got.Longitude)
	assert.Equal(t, "52.370216", *got.Latitude)
	assert.Equal(t, "12", *got.ZoomLevel)
}

func TestResolveLocation_UpdateCopiesValues(t *testing.T) {
	n := newTestNormalizer()
	in := NewMapInput(http.MethodPut, IntentUpdate, coords("1"))

	got := n.ResolveLocation(in, "")

	assert.False(t, got.Store)
	assert.True(t, got.Update)
	require.NotNil(t, got.Longitude)
	assert.Equal(t, "4.895168", *got.Longitude)
}

// A POST to an update route satisfies both branches, so the result carries
// store and update at once.
func TestResolveLocation_PostUpdateRunsBothBranches(t *testing.T) {
	n := newTestNormalizer()
	in := NewMapInput(http.MethodPost, IntentUpdate, coords("yes"))

	got := n.ResolveLocation(in, "")

	assert.True(t, got.Store)
	assert.True(t, got.Update)
	require.NotNil(t, got.ZoomLevel)
	assert.Equal(t, "12", *got.ZoomLevel)
}

func TestResolveLocation_IncompleteCoordinatesDegrade(t *testing.T) {
	n := newTestNormalizer()

	cases := map[string]map[string]any{
		"missing zoom": {
			"longitude": "1", "latitude": "2", "has_location": "true",
		},
		"empty latitude": {
			"longitude": "1", "latitude": "", "zoom_level": "3", "has_location": "true",
		},
		"null longitude": {
			"longitude": nil, "latitude": "2", "zoom_level": "3", "has_location": "true",
		},
		"nothing at all": {},
	}

	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			for _, method := range []string{http.MethodPost, http.MethodPut} {
				in := NewMapInput(method, IntentUpdate, fields)
				assert.Equal(t, degraded(), n.ResolveLocation(in, ""))
			}
		})
	}
}

func TestResolveLocation_ReadOnlyRequestDegrades(t *testing.T) {
	n := newTestNormalizer()
	in := NewMapInput(http.MethodGet, IntentUnknown, coords("true"))

	assert.Equal(t, degraded(), n.ResolveLocation(in, ""))
}

func TestResolveLocation_Prefix(t *testing.T) {
	n := newTestNormalizer()
	in := NewMapInput(http.MethodPost, IntentCreate, map[string]any{
		"home_longitude":    "1.5",
		"home_latitude":     "2.5",
		"home_zoom_level":   "6",
		"home_has_location": "true",
		"longitude":         "9",
	})

	got := n.ResolveLocation(in, "home")
	assert.True(t, got.Store)
	require.NotNil(t, got.Longitude)
	assert.Equal(t, "1.5", *got.Longitude)

	assert.Equal(t, degraded(), n.ResolveLocation(in, ""))
}

func TestLocationKeys(t *testing.T) {
	lon, lat, zoom, has := LocationKeys("")
	assert.Equal(t, []string{"longitude", "latitude", "zoom_level", "has_location"}, []string{lon, lat, zoom, has})

	lon, lat, zoom, has = LocationKeys("work")
	assert.Equal(t, []string{"work_longitude", "work_latitude", "work_zoom_level", "work_has_location"}, []string{lon, lat, zoom, has})
}
