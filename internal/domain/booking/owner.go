package booking

import (
	"strings"

	"github.com/thanFreecss/celebrity-salon/internal/models"
)

// Owner is who a booking belongs to: a Registered account or a Guest known
// only by contact details.
type Owner interface {
	isOwner()
}

type Registered struct {
	CustomerID uint
}

type Guest struct {
	Name  string
	Email string
	Phone string
}

func (Registered) isOwner() {}
func (Guest) isOwner()      {}

func OwnerOf(b *models.Booking) Owner {
	if b.CustomerID != nil {
		return Registered{CustomerID: *b.CustomerID}
	}
	return Guest{Name: b.FullName, Email: b.Email, Phone: b.MobileNumber}
}

// Actor is the authenticated caller of a self-service operation.
type Actor struct {
	UserID uint
	Email  string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// OwnedBy reports whether actor may act on b as its customer. Guest bookings
// belong to the account whose email they were made with.
func OwnedBy(b *models.Booking, actor Actor) bool {
	switch o := OwnerOf(b).(type) {
	case Registered:
		return o.CustomerID == actor.UserID
	case Guest:
		return actor.Email != "" && strings.EqualFold(o.Email, actor.Email)
	}
	return false
}
