package model

// Item 商品
type Item struct {
	BaseModel
	Name  string  `gorm:"size:100;not null" json:"name"`
	Price float64 `gorm:"not null;check:price >= 0" json:"price"`

	// 所属店铺，必填；解绑后指向哨兵店铺 UnassignedStoreID
	StoreID int64 `gorm:"not null;index" json:"store_id"`

	// 多对多：商品标签，关联表 item_tags
	Tags []Tag `gorm:"many2many:item_tags;" json:"tags,omitempty"`
}

func (Item) TableName() string {
	return "items"
}
