package model

// Contact is a person record belonging to exactly one category.
type Contact struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        *string `json:"name" gorm:"size:255"`
	SureName    *string `json:"sureName" gorm:"size:255"`
	Email       string  `json:"email" gorm:"size:255;not null"`
	PhoneNumber *string `json:"phoneNumber" gorm:"size:64"`
	BirthDate   *Date   `json:"birthDate"`
	CategoryID  int64   `json:"categoryId" gorm:"not null;index"`

	// Relations. Loaded only when explicitly expanded.
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// ContactFilter narrows contact listings.
type ContactFilter struct {
	CategoryID     *int64
	ExpandCategory bool
}
