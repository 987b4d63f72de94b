package model

// 哨兵店铺：被解绑的商品统一挂到这里
const (
	UnassignedStoreID   int64 = -1
	UnassignedStoreName       = "Unassigned"
)

// Store 店铺
type Store struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	// 一对多：店铺下的商品。外键 RESTRICT，还挂着商品的店铺不允许删除
	Items []Item `gorm:"foreignKey:StoreID;constraint:OnDelete:RESTRICT" json:"items,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}
