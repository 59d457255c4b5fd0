package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const PlaceholderUserName = "Demo User"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// DerivedEmail is the address assigned to users that never supplied one.
func DerivedEmail(userID string) string {
	return fmt.Sprintf("%s@demo.com", userID)
}

func (user *User) UnmarshalJSON(data []byte) error {
	var decoded struct {
		ID        Text      `json:"id"`
		Email     Text      `json:"email"`
		Name      Text      `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*user = User{
		ID:        decoded.ID.String(),
		Email:     decoded.Email.String(),
		Name:      decoded.Name.String(),
		CreatedAt: decoded.CreatedAt,
	}
	return nil
}
