package models

type DashboardStats struct {
	TotalEvents     int `json:"totalEvents"`
	TotalCategories int `json:"totalCategories"`
	TotalCandidates int `json:"totalCandidates"`
	TotalJudges     int `json:"totalJudges"`
	TotalVotes      int `json:"totalVotes"`
}

type DashboardResponse struct {
	Stats        DashboardStats  `json:"stats"`
	RecentEvents []EventResponse `json:"recentEvents"`
}
