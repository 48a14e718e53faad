package booking

import "github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"

var validStatuses = map[string]struct{}{
	models.BookingStatusPending:   {},
	models.BookingStatusConfirmed: {},
	models.BookingStatusCompleted: {},
	models.BookingStatusCancelled: {},
}

// IsValidStatus reports membership in the closed booking status set.
// Any member may move to any other; there is no transition graph.
func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

type CreateRequest struct {
	ServiceID     string `json:"serviceId" validate:"required"`
	ServiceTitle  string `json:"serviceTitle" validate:"required"`
	FullName      string `json:"fullName" validate:"required"`
	Phone         string `json:"phone" validate:"required,phone"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
	PreferredDate string `json:"preferredDate" validate:"required"`
	Notes         string `json:"notes"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
