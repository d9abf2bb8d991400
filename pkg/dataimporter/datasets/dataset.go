package datasets

type DataSet struct {
	Identifier    string
	DataSourceRef string `json:"-"`
	Format        DataSetFormat

	Provider Provider

	// Source is a directory or a base URL the format's files are read from
	Source               string
	SourceAuthentication SourceAuthentication `json:"-"`

	// Files overrides where individual files come from, keyed on the format's file name
	Files map[string]string `json:",omitempty"`

	SupportedObjects SupportedObjects
	IgnoreObjects    IgnoreObjects

	// DefaultSegmentCost in dollars is used for segments the format derives rather than reads
	DefaultSegmentCost float64
	VerifyFares        bool
}

type SourceAuthentication struct {
	Query  map[string]string
	Header map[string]string
}

type DataSetFormat string

const (
	DataSetFormatTables   DataSetFormat = "hk-mtr-tables"
	DataSetFormatOpenData DataSetFormat = "hk-mtr-opendata"
)

type Provider struct {
	Name    string
	Website string
}

type IgnoreObjects struct {
	Lines []string
}

// DataSource is one registry yaml document, its datasets inherit the provider and authentication
type DataSource struct {
	Identifier  string
	Description string
	Provider    Provider
	Datasets    []DataSet

	SourceAuthentication *SourceAuthentication
}
