package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hance08/canopy/internal/model"
)

func TestNewSelectStartsOnDefault(t *testing.T) {
	options := []string{model.RegionA.String(), model.RegionB.String(), model.RegionC.String()}

	selected := model.RegionB.String()
	field := newSelect("Region:", options, &selected)
	assert.Equal(t, "region_b", field.GetValue())
	assert.Equal(t, "region_b", selected)
}
