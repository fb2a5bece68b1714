package notifier

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/you/excursion-booking/internal/events"
)

// Notifier is the delivery seam (console, email, webhook, ...). A failing
// Notify never affects the booking it describes.
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{ log *zap.Logger }

func NewConsole(log *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	c.log.Info("notification", zap.String("subject", subject), zap.String("message", message))
	return nil
}

// Summary renders the operator-facing text for a confirmed booking.
func Summary(ev events.BookingConfirmed) (subject, message string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking %d (%s)\n", ev.BookingID, ev.BookingType)
	fmt.Fprintf(&b, "Name: %s %s\n", ev.FirstName, ev.LastName)
	fmt.Fprintf(&b, "Phone: %s\n", ev.Phone)
	if ev.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", ev.Email)
	}
	fmt.Fprintf(&b, "Contact via: %s, language: %s\n", ev.ContactMethod, ev.Language)
	if ev.ExcursionTitle != "" {
		fmt.Fprintf(&b, "Excursion: %s\n", ev.ExcursionTitle)
	}
	if ev.CarID != nil {
		fmt.Fprintf(&b, "Car: %d\n", *ev.CarID)
	}
	if ev.EndDate != "" && ev.EndDate != ev.Date {
		fmt.Fprintf(&b, "Dates: %s to %s\n", ev.Date, ev.EndDate)
	} else {
		fmt.Fprintf(&b, "Date: %s\n", ev.Date)
	}
	fmt.Fprintf(&b, "People: %d\n", ev.PeopleCount)
	if ev.PickupLocation != "" {
		fmt.Fprintf(&b, "Pickup: %s\n", ev.PickupLocation)
	}
	fmt.Fprintf(&b, "Total: %.2f", ev.TotalPrice)

	subject = fmt.Sprintf("New booking %d (%s)", ev.BookingID, ev.Date)
	return subject, b.String()
}
