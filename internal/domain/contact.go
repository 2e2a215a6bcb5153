package domain

import "time"

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}
