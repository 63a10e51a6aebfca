package booking

import (
	"fmt"
	"strings"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors пользовательские ошибки выбора; бронь не отправляется, система в порядке.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate проверяет выбор перед созданием брони:
// дата из списка выездов и не sold_out, номер на нужное число мест,
// число путешественников в пределах тура, контакты заполнены.
func Validate(t *tours.Tour, s Session) error {
	var errs ValidationErrors

	if s.DepartureDate == "" {
		errs = append(errs, FieldError{"departureDate", "Please choose a departure date."})
	} else if d, ok := t.Departure(s.DepartureDate); !ok {
		errs = append(errs, FieldError{"departureDate", "The selected date is not available for this tour."})
	} else if d.SoldOut() {
		errs = append(errs, FieldError{"departureDate", "The selected departure is sold out."})
	}

	if s.Adults > 0 {
		if s.Room == nil {
			errs = append(errs, FieldError{"roomConfiguration", "Please choose a room configuration."})
		} else if s.Room.Beds() != s.BedsNeeded() {
			errs = append(errs, FieldError{"roomConfiguration",
				fmt.Sprintf("The selected rooms sleep %d but %d beds are needed.", s.Room.Beds(), s.BedsNeeded())})
		}
	}

	if total := s.Travelers(); !t.Travelers(total) {
		errs = append(errs, FieldError{"travelers",
			fmt.Sprintf("This tour takes between %d and %d travelers.", t.MinTravelers, t.MaxTravelers)})
	}

	if strings.TrimSpace(s.Customer.Name) == "" {
		errs = append(errs, FieldError{"customer.name", "Please enter your name."})
	}
	if strings.TrimSpace(s.Customer.Email) == "" {
		errs = append(errs, FieldError{"customer.email", "Please enter your email."})
	}
	if strings.TrimSpace(s.Customer.Phone) == "" {
		errs = append(errs, FieldError{"customer.phone", "Please enter your phone number."})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
