package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
)

var _ port.OrderPlacer = (*Checkout)(nil)

const (
	DefaultSubmitDelay = 1500 * time.Millisecond
	orderNumberLen     = 9
)

// A Checkout turns a session cart into a simulated order.
type Checkout struct {
	publisher port.OrderPublisher
	validate  *validator.Validate
	delay     time.Duration
	now       func() time.Time
}

func NewCheckout(publisher port.OrderPublisher, delay time.Duration) *Checkout {
	return &Checkout{
		publisher: publisher,
		validate:  newFormValidator(),
		delay:     delay,
		now:       time.Now,
	}
}

// Summary returns the money figures of the session cart.
func (c *Checkout) Summary(s port.Session) domain.CartSummary {
	return domain.Summarize(s.Cart().CartTotal())
}

// PlaceOrder validates form, waits for the simulated round trip, publishes
// the order and clears the cart.
//
// Only one submission per session may be pending at a time.
func (c *Checkout) PlaceOrder(
	ctx context.Context, s port.Session, form domain.CheckoutForm,
) (domain.Order, error) {
	const op = "Checkout.PlaceOrder"

	cart := s.Cart().State()
	if len(cart.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	form = normalizeForm(form)
	if err := c.validateForm(form); err != nil {
		s.Notify(ctx, domain.Notification{
			Title:       "Validation Error",
			Description: "Please fix the errors in the form",
			Severity:    domain.SeverityDestructive,
		})
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if !s.StartSubmit() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrSubmitInProgress)
	}
	defer s.FinishSubmit()

	c.wait()

	summary := domain.Summarize(cart.Total())
	order := domain.Order{
		Number:        newOrderNumber(),
		FullName:      form.FullName,
		Phone:         form.Phone,
		Address:       form.Address,
		PaymentMethod: form.PaymentMethod,
		Items:         cart.Items,
		Summary:       summary,
		PlacedAt:      c.now().UTC(),
	}

	if err := c.publisher.PublishOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.Notify(ctx, domain.Notification{
		Title:       "Order Placed Successfully!",
		Description: "Your order has been confirmed. Total: $" + summary.Total.StringFixed(2),
		Severity:    domain.SeveritySuccess,
	})
	s.Cart().ClearCart(ctx)

	return order, nil
}

// wait stands in for the network round trip. It cannot be cancelled.
func (c *Checkout) wait() {
	if c.delay <= 0 {
		return
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	<-t.C
}

func (c *Checkout) validateForm(form domain.CheckoutForm) error {
	err := c.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &domain.ValidationError{Fields: make(map[string]string)}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = fieldMessage(fe.Field(), fe.Tag())
	}
	return verr
}

func normalizeForm(form domain.CheckoutForm) domain.CheckoutForm {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Address = strings.TrimSpace(form.Address)
	if form.PaymentMethod == "" {
		form.PaymentMethod = domain.PaymentCash
	}
	return form
}

var formMessages = map[string]string{
	"fullName.required":   "Full name is required",
	"fullName.min":        "Name must be at least 3 characters",
	"phone.required":      "Phone number is required",
	"phone.phone":         "Please enter a valid phone number (at least 10 digits)",
	"address.required":    "Address is required",
	"address.min":         "Please enter a complete address",
	"paymentMethod.oneof": "Payment method must be cash or card",
}

func fieldMessage(field, tag string) string {
	if msg, ok := formMessages[field+"."+tag]; ok {
		return msg
	}
	return "Invalid value"
}

var phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)

const minPhoneDigits = 10

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})

	err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return validPhone(fl.Field().String())
	})
	if err != nil {
		panic(err) // develop mistake
	}
	return v
}

func validPhone(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

func newOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:orderNumberLen])
}
