package picker

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
)

var (
	ErrInvalid = errors.New("client name and code are required")
	ErrBusy    = errors.New("a save is already in progress")
)

// CustomerSaver creates customers.
type CustomerSaver interface {
	SaveCustomer(ctx context.Context, in api.SaveCustomerRequest) (domain.Customer, error)
}

// ClientForm is the draft of a new customer created from the project dialog.
type ClientForm struct {
	Name    string
	Code    string
	Address string

	mu   sync.Mutex
	busy bool
}

// Valid reports whether the required fields are filled.
func (f *ClientForm) Valid() bool {
	return len(f.Errors()) == 0
}

// Errors returns inline messages keyed by field name.
func (f *ClientForm) Errors() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Client name is required"
	}
	if strings.TrimSpace(f.Code) == "" {
		errs["code"] = "Client code is required"
	}
	return errs
}

// Busy reports whether a save is outstanding.
func (f *ClientForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Submit saves the form. On success the form is cleared; on failure the
// entered values are kept.
func (f *ClientForm) Submit(ctx context.Context, saver CustomerSaver) (domain.Customer, error) {
	if !f.Valid() {
		return domain.Customer{}, ErrInvalid
	}
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return domain.Customer{}, ErrBusy
	}
	f.busy = true
	req := api.SaveCustomerRequest{
		Name:    strings.TrimSpace(f.Name),
		Code:    strings.TrimSpace(f.Code),
		Address: strings.TrimSpace(f.Address),
	}
	f.mu.Unlock()

	created, err := saver.SaveCustomer(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		return domain.Customer{}, err
	}
	f.Name, f.Code, f.Address = "", "", ""
	return created, nil
}

// Reset clears the form.
func (f *ClientForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Name, f.Code, f.Address = "", "", ""
}

// Merge adds c to list, replacing an entry with the same id.
func Merge(list []domain.Customer, c domain.Customer) []domain.Customer {
	out := make([]domain.Customer, 0, len(list)+1)
	replaced := false
	for _, existing := range list {
		if existing.ID == c.ID {
			out = append(out, c)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, c)
	}
	return out
}
