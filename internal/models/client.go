package models

import (
	"encoding/json"
	"time"
)

const UnknownClientName = "Unknown"

type Client struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"index;not null"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (Client) TableName() string {
	return "clients"
}

func (client *Client) UnmarshalJSON(data []byte) error {
	var decoded struct {
		ID        Text      `json:"id"`
		UserID    Text      `json:"userId"`
		Name      Text      `json:"name"`
		Email     Text      `json:"email"`
		Address   Text      `json:"address"`
		Phone     Text      `json:"phone"`
		CreatedAt time.Time `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*client = Client{
		ID:        decoded.ID.String(),
		UserID:    decoded.UserID.String(),
		Name:      decoded.Name.String(),
		Email:     decoded.Email.String(),
		Address:   decoded.Address.String(),
		Phone:     decoded.Phone.String(),
		CreatedAt: decoded.CreatedAt,
	}
	return nil
}
