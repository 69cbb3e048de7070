package entity

import "time"

// Client representa un cliente de la florería.
type Client struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
