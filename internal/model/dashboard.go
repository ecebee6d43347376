package model

// DashboardStats aggregates listing counts for the admin dashboard
type DashboardStats struct {
	Events         int64 `json:"events"`
	Jobs           int64 `json:"jobs"`
	Surveys        int64 `json:"surveys"`
	VerifiedAlumni int64 `json:"verifiedAlumni"`
}
