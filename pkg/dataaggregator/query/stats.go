package query

type Summary struct{}

type LineStats struct{}

type RidershipTrend struct {
	Scope string
}

type AccessibilityRanking struct {
	Limit int
}
