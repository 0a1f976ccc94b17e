package domain

// Default scheduling settings, used when the settings row is missing or unreadable
const (
	DefaultSlotDurationMinutes    = 60
	DefaultMinAdvanceBookingHours = 4
	DefaultMaxAdvanceBookingDays  = 60
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinAdvanceBookingHours = 0
	MaxAdvanceBookingHours = 720 // 30 days
	MinAdvanceBookingDays  = 1
	MaxAdvanceBookingDays  = 365 // 1 year
	MaxWeeklyRules         = 7 * 24
	InitialCustomerID      = 1000
	MaxCustomerIDLength    = 18 // цифр, ограничение scheduling_customer_id_format
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие время в расписании
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}
