package contact

type CreateRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
