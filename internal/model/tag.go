package model

// Tag 标签，按店铺隔离（同一店铺内名称唯一）
type Tag struct {
	BaseModel
	Name    string `gorm:"size:100;not null;uniqueIndex:idx_tags_store_name" json:"name"`
	StoreID int64  `gorm:"not null;uniqueIndex:idx_tags_store_name" json:"store_id"`

	Items []Item `gorm:"many2many:item_tags;" json:"items,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}
