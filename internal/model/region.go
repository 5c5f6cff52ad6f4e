package model

import (
	"fmt"
	"strings"
)

// Region identifies where a planting took place. The zero value is not a
// valid region.
type Region uint8

const (
	RegionA Region = iota + 1
	RegionB
	RegionC
	RegionD
	RegionE
	RegionF
)

// RegionCount is the number of valid regions.
const RegionCount = 6

var regionNames = [RegionCount + 1]string{
	"",
	"region_a",
	"region_b",
	"region_c",
	"region_d",
	"region_e",
	"region_f",
}

// Regions returns every valid region in declaration order.
func Regions() []Region {
	out := make([]Region, 0, RegionCount)
	for r := RegionA; r <= RegionF; r++ {
		out = append(out, r)
	}
	return out
}

func ParseRegion(s string) (Region, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r := RegionA; r <= RegionF; r++ {
		if regionNames[r] == name || strings.TrimPrefix(regionNames[r], "region_") == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", s)
}

func (r Region) Valid() bool {
	return r >= RegionA && r <= RegionF
}

func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("region(%d)", uint8(r))
	}
	return regionNames[r]
}

func (r Region) index() int {
	return int(r) - 1
}

func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid region %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Region) UnmarshalText(b []byte) error {
	v, err := ParseRegion(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
