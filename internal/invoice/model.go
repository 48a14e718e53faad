package invoice

type CreateRequest struct {
	InvoiceNumber string `json:"invoiceNumber" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerName  string `json:"customerName" validate:"required"`
	ServiceTitle  string `json:"serviceTitle" validate:"required"`
	Amount        int64  `json:"amount" validate:"gte=0"`
	Status        string `json:"status" validate:"omitempty,oneof=unpaid paid"`
	DueDate       string `json:"dueDate" validate:"omitempty,date"`
}
