package model

import "time"

// ContactDetails is a singleton record holding the studio's contact data.
type ContactDetails struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactDetailsCreate struct {
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
}

func (in ContactDetailsCreate) ContactDetails() *ContactDetails {
	return &ContactDetails{Email: in.Email, Phone: in.Phone, Address: in.Address}
}

type ContactDetailsPatch struct {
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

func (p ContactDetailsPatch) Apply(c *ContactDetails) {
	assign(&c.Email, p.Email)
	assign(&c.Phone, p.Phone)
	assign(&c.Address, p.Address)
}
