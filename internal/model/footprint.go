package model

import (
	"time"
)

// Footprint 足迹表，删除仅做逻辑标记，行永不物理删除
type Footprint struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserName  string    `gorm:"column:username;type:varchar(64);not null" json:"username"`
	Content   *string   `gorm:"type:text" json:"content"`
	ImageURL  *string   `gorm:"type:varchar(255)" json:"image_url"`
	IPAddress string    `gorm:"type:varchar(64)" json:"ip_address"`
	UserAgent string    `gorm:"type:varchar(255)" json:"user_agent"`
	IsDeleted bool      `gorm:"not null;default:0;index:idx_deleted" json:"is_deleted"`
	CreatedAt time.Time `gorm:"index:idx_timestamp" json:"created_at"`
}

func (Footprint) TableName() string {
	return "footprints"
}
