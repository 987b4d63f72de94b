package model

import (
	"time"
)

// BaseModel 公共字段
// 不带软删除：资源删除后唯一名称需要立刻可复用
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
