package service

const (
	// Dashboard windows
	ScoreHistoryLimit   = 30
	RecentHistoryLimit  = 10
	ComparisonRecordMin = 2

	// Admin analytics fan-out
	AdminUserConcurrency = 8
)
