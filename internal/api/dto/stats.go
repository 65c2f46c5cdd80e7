package dto

type TopUserDTO struct {
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

type StatsDTO struct {
	TotalFootprints int64        `json:"total_footprints"`
	WithImages      int64        `json:"with_images"`
	TodayCount      int64        `json:"today_count"`
	TopUsers        []TopUserDTO `json:"top_users"`
}
