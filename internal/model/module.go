package model

// swagger:model Module
type Module struct {
	UUIDBase
	SubjectID     string `gorm:"index;type:varchar(36);not null" json:"subjectId"`
	CreatedBy     string `gorm:"index;type:varchar(36)" json:"createdBy"`
	NameRu        string `gorm:"size:255;not null" json:"nameRu"`
	NameUz        string `gorm:"size:255" json:"nameUz"`
	DescriptionRu string `gorm:"type:text" json:"descriptionRu"`
	DescriptionUz string `gorm:"type:text" json:"descriptionUz"`
}

func (Module) TableName() string {
	return "modules"
}
