package archive

import "net/url"

// Route is the shareable view state: either one date or one song filter.
type Route struct {
	Date string
	Song string
}

// ParseRoute reads a route from query values.
func ParseRoute(v url.Values) Route {
	return Route{Date: v.Get("date"), Song: v.Get("song")}
}

// Values encodes the route. A date takes precedence over a song.
func (r Route) Values() url.Values {
	v := url.Values{}
	switch {
	case r.Date != "":
		v.Set("date", r.Date)
	case r.Song != "":
		v.Set("song", r.Song)
	}
	return v
}

// String returns the route as a query string, "" for the default route.
func (r Route) String() string {
	enc := r.Values().Encode()
	if enc == "" {
		return ""
	}
	return "?" + enc
}
