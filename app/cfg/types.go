package cfg

type Cfg struct {
	// Application configuration
	Port        string
	DataFile    string
	VendorsFile string
	HistoryDays int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
