package model

// 唯一的管理员身份
const AdminUserID int64 = 1

// Role 系统角色
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// RoleFor 由用户身份推导角色。
// 角色只在签发 Token 时计算一次，不落库、不可独立篡改。
func RoleFor(userID int64) Role {
	if userID == AdminUserID {
		return RoleAdmin
	}
	return RoleStandard
}

// User 用户
type User struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希，永不外发
}

func (User) TableName() string {
	return "users"
}
