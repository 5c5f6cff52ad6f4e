package validation

import (
	"fmt"

	"github.com/hance08/canopy/internal/utils"
)

// ValidateAmount validates a major-unit amount typed by the user.
func ValidateAmount(input string) error {
	minor, err := utils.ParseMinor(input)
	if err != nil {
		return err
	}
	if minor <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
