package booking

type Status string

const (
	StatusPendingPayment   Status = "PENDING_PAYMENT"
	StatusPaymentConfirmed Status = "PAYMENT_CONFIRMED"
	StatusConfirmed        Status = "CONFIRMED"
	StatusCompleted        Status = "COMPLETED"
	StatusCancelled        Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPendingPayment:   {StatusPaymentConfirmed, StatusCancelled},
	StatusPaymentConfirmed: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:        {StatusCompleted, StatusCancelled},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusPaymentConfirmed, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HoldsRoom reports whether a booking in this status blocks its dates.
func (s Status) HoldsRoom() bool {
	return s != StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Role is the actor role carried by the access token.
type Role string

const (
	RoleGuest  Role = "guest"
	RoleTenant Role = "tenant"
)

func (r Role) IsValid() bool {
	return r == RoleGuest || r == RoleTenant
}
