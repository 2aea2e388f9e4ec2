package balldontlie

import "time"

const providerName = "balldontlie"

const (
	defaultBaseURL     = "https://api.balldontlie.io/v1"
	defaultHTTPTimeout = 10 * time.Second
	defaultPerPage     = 100
	defaultMaxPages    = 10
)

const statusFinal = "Final"
