package domain

import "time"

// DashboardStats summarises account counts for the admin dashboard.
type DashboardStats struct {
	TotalUsers    int `json:"total_users"`
	PendingUsers  int `json:"pending_users"`
	ApprovedUsers int `json:"approved_users"`
	RevokedUsers  int `json:"revoked_users"`
	TotalSermons  int `json:"total_sermons"`
}

// ActivityEntry is one row of the admin recent-activity feed.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
