package datasets

// SupportedObjects lists the optional tables a dataset provides, the network tables are always required
type SupportedObjects struct {
	Fares      bool
	Ridership  bool
	Facilities bool
}
