package opendata

type lineStationRow struct {
	LineCode    string `csv:"Line Code"`
	Direction   string `csv:"Direction"`
	StationCode string `csv:"Station Code"`
	StationID   string `csv:"Station ID"`
	ChineseName string `csv:"Chinese Name"`
	EnglishName string `csv:"English Name"`
	Sequence    string `csv:"Sequence"`
}

type fareRow struct {
	SourceName      string `csv:"SRC_STATION_NAME"`
	SourceID        string `csv:"SRC_STATION_ID"`
	DestinationName string `csv:"DEST_STATION_NAME"`
	DestinationID   string `csv:"DEST_STATION_ID"`
	OctopusAdult    string `csv:"OCT_ADT_FARE"`
	OctopusStudent  string `csv:"OCT_STD_FARE"`
	SingleAdult     string `csv:"SINGLE_ADT_FARE"`
	OctopusChild    string `csv:"OCT_CON_CHILD_FARE"`
}

type facilityRow struct {
	StationNumber string `csv:"Station_No"`
	Type          string `csv:"Facility_Type"`
	Description   string `csv:"Description_En"`
	Location      string `csv:"Location_En"`
}

type ridershipRow struct {
	Year                    string `csv:"Year"`
	DailyRidershipThousands string `csv:"Daily_Ridership_Thousands"`
}
