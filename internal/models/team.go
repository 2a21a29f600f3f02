package models

type Team struct {
	Key    string `gorm:"primaryKey" json:"key"`
	Name   string `gorm:"not null" json:"name"`
	Abbrev string `gorm:"not null" json:"abbrev"`
}

func (Team) TableName() string {
	return "teams"
}
