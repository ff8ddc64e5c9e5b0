package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Debt    TransactionKind = "DEBT"
	Payment TransactionKind = "PAYMENT"
)

type (
	TransactionKind string

	// Customer is the sole persisted entity: a debtor record with contact
	// info and an outstanding balance in BRL.
	Customer struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Phone     string    `json:"phone"`
		Email     string    `json:"email"`
		TotalDebt Money     `json:"totalDebt"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// CustomerUpdate carries the full mutable field set. Updates always
	// replace all four fields; there is no partial-patch form.
	CustomerUpdate struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		TotalDebt Money  `json:"totalDebt"`
	}

	// Transaction is declared for the advisory contract but never persisted.
	Transaction struct {
		ID          string          `json:"id"`
		CustomerID  string          `json:"customerId"`
		Amount      Money           `json:"amount"`
		Kind        TransactionKind `json:"type"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
	}
)

var (
	ErrMissingID     = errors.New("missing customer id")
	ErrEmptyName     = errors.New("empty customer name")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFound      = errors.New("customer not found")
	ErrConflict      = errors.New("customer already exists")
)

func (c Customer) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	return c.TotalDebt.Validate()
}

func (u CustomerUpdate) Validate() error {
	return u.TotalDebt.Validate()
}

func (k TransactionKind) IsValid() bool {
	switch k {
	case Debt, Payment:
		return true
	default:
		return false
	}
}
