package model

// LeaderboardEntry 排行榜条目，按总分降序、同分按目录顺序，Position 从 1 起
type LeaderboardEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Position int    `json:"position"`
}
