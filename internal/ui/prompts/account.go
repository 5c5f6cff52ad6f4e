package prompts

import (
	"fmt"

	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/validation"
)

func PromptAccountID(message string, validator func(string) error) (string, error) {
	if validator == nil {
		validator = validation.ValidateAccountID
	}
	return PromptInput(message, "", validator)
}

func PromptEmail() (string, error) {
	return PromptInput("Email:", "", validation.ValidateEmail)
}

// PromptRegion asks which region a planting happened in.
func PromptRegion() (model.Region, error) {
	regions := model.Regions()
	options := make([]string, len(regions))
	for i, r := range regions {
		options[i] = r.String()
	}

	selected, err := PromptSelect("Region:", options, options[0])
	if err != nil {
		return 0, fmt.Errorf("input cancelled: %w", err)
	}
	return model.ParseRegion(selected)
}
