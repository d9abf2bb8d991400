package query

import "context"

type Route struct {
	Context context.Context

	Origin      string
	Destination string
}

// FareQuote asks for the fares between two stations, Class limits the answer to one fare class
type FareQuote struct {
	Origin      string
	Destination string
	Class       string
}
