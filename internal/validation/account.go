package validation

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/hance08/canopy/internal/constants"
)

// AccountStore is the lookup the validators need. It is satisfied by
// store.Repository.
type AccountStore interface {
	AccountExists(ctx context.Context, id string) (bool, error)
}

type AccountValidator struct {
	store AccountStore
}

func NewAccountValidator(store AccountStore) *AccountValidator {
	return &AccountValidator{store: store}
}

// ValidateAccountID checks the format of an account id without looking it up.
func ValidateAccountID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("account id can't be empty")
	}
	if len(id) > constants.MaxAccountIDLen {
		return fmt.Errorf("account id too long (max %d characters)", constants.MaxAccountIDLen)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("account id can't contain whitespace")
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email can't be empty")
	}
	if len(email) > constants.MaxEmailLen {
		return fmt.Errorf("email too long (max %d characters)", constants.MaxEmailLen)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("'%s' is not a valid email address", email)
	}
	return nil
}

// ValidateEmailPrefix accepts any non-empty prefix of a plausible address.
func ValidateEmailPrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return fmt.Errorf("search prefix can't be empty")
	}
	if len(prefix) > constants.MaxEmailLen {
		return fmt.Errorf("search prefix too long (max %d characters)", constants.MaxEmailLen)
	}
	return nil
}

// ValidateNewAccountID returns a validator that checks format and that the
// id is still free.
func (v *AccountValidator) ValidateNewAccountID(ctx context.Context) func(string) error {
	return func(id string) error {
		if err := ValidateAccountID(id); err != nil {
			return err
		}
		exists, err := v.store.AccountExists(ctx, strings.TrimSpace(id))
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if exists {
			return fmt.Errorf("account '%s' already exists", id)
		}
		return nil
	}
}

// ValidateExistingAccountID returns a validator that requires the account to exist.
func (v *AccountValidator) ValidateExistingAccountID(ctx context.Context) func(string) error {
	return func(id string) error {
		if err := ValidateAccountID(id); err != nil {
			return err
		}
		exists, err := v.store.AccountExists(ctx, strings.TrimSpace(id))
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if !exists {
			return fmt.Errorf("account '%s' not found", id)
		}
		return nil
	}
}
