package ds

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Login    string `json:"login" gorm:"type:varchar(100) not null;uniqueIndex"`
	Password string `json:"-" gorm:"type:varchar(100) not null"`
	IsAdmin  bool   `json:"isAdmin" gorm:"type:boolean not null;default:false"`
}
