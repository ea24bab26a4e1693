package models

import "time"

// Confirmation é uma confirmação de presença enviada pelo formulário do convite.
// Data guarda o JSON original; os demais campos são extraídos dele para consulta.
type Confirmation struct {
	ID          string         `json:"id" db:"id"`
	Email       string         `json:"email" db:"email"`
	Name        string         `json:"Name,omitempty" db:"name"`
	Guest       string         `json:"Guest,omitempty" db:"guest"`
	PlateOption string         `json:"PlateOption,omitempty" db:"plate_option"`
	Price       string         `json:"Price,omitempty" db:"price"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty" db:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	Data        map[string]any `json:"data" db:"data"`
}

// ConfirmationMeta é devolvido ao salvar uma confirmação.
type ConfirmationMeta struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}
