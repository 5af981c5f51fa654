package pkg

// Route paths.
const (
	HealthPath    = "/health"
	LivenessPath  = "/livez"
	ReadinessPath = "/readyz"
	MetricsPath   = "/metrics"
	SnippetsPath  = "/snippets"
	SnippetPath   = SnippetsPath + "/:id"
)
