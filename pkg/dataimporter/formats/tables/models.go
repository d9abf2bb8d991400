package tables

type stationRow struct {
	ID            string `csv:"station_id"`
	Code          string `csv:"code"`
	Name          string `csv:"name"`
	ChineseName   string `csv:"chinese_name"`
	Lines         string `csv:"lines"`
	Latitude      string `csv:"lat"`
	Longitude     string `csv:"lon"`
	Accessibility string `csv:"accessibility_flags"`
}

type lineRow struct {
	ID       string `csv:"line_id"`
	Name     string `csv:"name"`
	Colour   string `csv:"colour"`
	Stations string `csv:"stations"`
}

type segmentRow struct {
	FromID string `csv:"from_id"`
	ToID   string `csv:"to_id"`
	LineID string `csv:"line_id"`
	Cost   string `csv:"cost"`
}

type fareRow struct {
	FromID  string `csv:"from_id"`
	ToID    string `csv:"to_id"`
	Adult   string `csv:"fare"`
	Student string `csv:"student_fare"`
	Child   string `csv:"child_fare"`
	Single  string `csv:"single_fare"`
}

type ridershipRow struct {
	Date       string `csv:"date"`
	Scope      string `csv:"scope"`
	Passengers string `csv:"passengers"`
}

type facilityRow struct {
	StationID   string `csv:"station_id"`
	Type        string `csv:"facility_type"`
	Description string `csv:"description"`
	Location    string `csv:"location"`
}
