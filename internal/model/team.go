package model

// swagger:model Team
type Team struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Team) TableName() string {
	return "teams"
}
