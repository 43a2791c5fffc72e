package cfg

type Cfg struct {
	// Database configuration
	DBPath       string
	CacheBackend string
	RedisAddr    string

	// Collaborator services
	SearchEndpoint      string
	ExtractionEndpoints []string
	PriceEndpoint       string

	// Application configuration
	Port              string
	APIAccessKey      string
	HTTPTimeout       int
	MaxCandidates     int
	RecipeTTL         int
	WorkerCount       int
	SchedulerInterval int
	PatternTablePath  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
