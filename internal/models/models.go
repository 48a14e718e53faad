package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"

	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"

	ReminderType24h = "24h_before"
	ReminderType1h  = "1h_before"

	ReminderChannelEmail = "email"
	ReminderChannelSMS   = "sms"

	ReminderStatusPending = "pending"
	ReminderStatusSent    = "sent"
)

type Booking struct {
	ID            int64     `bson:"_id" json:"id"`
	ServiceID     string    `bson:"serviceId" json:"serviceId"`
	ServiceTitle  string    `bson:"serviceTitle" json:"serviceTitle"`
	FullName      string    `bson:"fullName" json:"fullName"`
	Phone         string    `bson:"phone" json:"phone"`
	Email         string    `bson:"email" json:"email"`
	Address       string    `bson:"address" json:"address"`
	PreferredDate string    `bson:"preferredDate" json:"preferredDate"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

type ContactMessage struct {
	ID        int64     `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string    `bson:"email" json:"email"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Invoice amounts are integer minor currency units (cents).
// PaidAt is set exactly once, when status flips to paid.
type Invoice struct {
	ID            int64      `bson:"_id" json:"id"`
	InvoiceNumber string     `bson:"invoiceNumber" json:"invoiceNumber"`
	CustomerEmail string     `bson:"customerEmail" json:"customerEmail"`
	CustomerName  string     `bson:"customerName" json:"customerName"`
	ServiceTitle  string     `bson:"serviceTitle" json:"serviceTitle"`
	Amount        int64      `bson:"amount" json:"amount"`
	Status        string     `bson:"status" json:"status"`
	DueDate       string     `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}

// Reminder carries a snapshot of the booking's customer and appointment
// fields taken at scheduling time; later edits to the booking do not
// change a pending reminder.
type Reminder struct {
	ID              int64      `bson:"_id" json:"id"`
	BookingID       int64      `bson:"bookingId" json:"bookingId"`
	CustomerName    string     `bson:"customerName" json:"customerName"`
	CustomerEmail   string     `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone   string     `bson:"customerPhone" json:"customerPhone"`
	ServiceTitle    string     `bson:"serviceTitle" json:"serviceTitle"`
	AppointmentDate string     `bson:"appointmentDate" json:"appointmentDate"`
	ReminderType    string     `bson:"reminderType" json:"reminderType"`
	Channel         string     `bson:"channel" json:"channel"`
	Status          string     `bson:"status" json:"status"`
	ScheduledFor    time.Time  `bson:"scheduledFor" json:"scheduledFor"`
	SentAt          *time.Time `bson:"sentAt,omitempty" json:"sentAt"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
}

type DashboardStats struct {
	TotalBookings    int64 `json:"totalBookings"`
	PendingBookings  int64 `json:"pendingBookings"`
	TotalInvoices    int64 `json:"totalInvoices"`
	PaidInvoices     int64 `json:"paidInvoices"`
	UnpaidInvoices   int64 `json:"unpaidInvoices"`
	TotalRevenue     int64 `json:"totalRevenue"`
	TotalContacts    int64 `json:"totalContacts"`
	PendingReminders int64 `json:"pendingReminders"`
}
