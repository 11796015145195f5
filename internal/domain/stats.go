package domain

// Stats is a point-in-time snapshot assembled from independent aggregate
// queries. Task and user counts may drift between the two queries.
type Stats struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	PendingTasks   int64   `json:"pending_tasks"`
	TotalUsers     int64   `json:"total_users"`
	ServerUptime   float64 `json:"server_uptime_seconds"`
	Timestamp      string  `json:"timestamp"`
}
