package domain

type Specialty struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type SpecialtyInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
