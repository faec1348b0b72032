package models

// Dependent rows below are owned by exactly one User. Nothing but the
// foreign key is constrained: duplicates accumulate and readers take the
// first inserted row (lowest id).

type Address struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Address string `gorm:"type:text" json:"address"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
}

type Size struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Size   string `gorm:"size:100" json:"size"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

type Payment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Method string `gorm:"size:255" json:"method"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// Preference is keyed by Key but not unique per user.
type Preference struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Key    string `gorm:"size:100;index" json:"key"`
	Value  string `gorm:"type:text" json:"value"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

type Travel struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Status   string `gorm:"size:50" json:"status"`
	Location string `gorm:"size:255" json:"location"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
}

type Birthday struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Birthday string `gorm:"size:10" json:"birthday"` // YYYY-MM-DD
	User     User   `gorm:"foreignKey:UserID" json:"-"`
}
