package models

// swagger:model ContactRequest
type ContactRequest struct {
	Name    string `json:"name"    example:"Ada"`
	Email   string `json:"email"   example:"ada@example.com"`
	Message string `json:"message" example:"Loved the post on slugs."`
}
