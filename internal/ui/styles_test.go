package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hance08/canopy/internal/model"
)

func TestTrees(t *testing.T) {
	assert.Equal(t, "1 tree", Trees(model.CreditPerTree))
	assert.Equal(t, "0.999 trees", Trees(999_000))
	assert.Equal(t, "0 trees", Trees(0))
}
