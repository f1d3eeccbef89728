package entity

// Department groups doctors and the records they write
type Department struct {
	ID             int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `gorm:"type:varchar(100);not null" json:"name"`
	Diagnostics    string `gorm:"type:text" json:"diagnostics"`
	Location       string `gorm:"type:varchar(100)" json:"location"`
	Specialization string `gorm:"type:varchar(100)" json:"specialization"`
}

func (Department) TableName() string {
	return "departments"
}
