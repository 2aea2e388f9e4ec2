package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldDays       = "days"
	FieldTeam       = "team"
	FieldCount      = "count"
	FieldCacheHit   = "cache_hit"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)
