package model

import (
	"encoding/json"
	"time"
)

// AccruedCredit tracks the tree credit an account has generated. Total is
// pledged at transfer time; the regional buckets fill as plantings fulfil
// the account's ledger entries.
type AccruedCredit struct {
	Total    Credit
	ByRegion [RegionCount]Credit
}

func (a AccruedCredit) Region(r Region) Credit {
	if !r.Valid() {
		return 0
	}
	return a.ByRegion[r.index()]
}

func (a *AccruedCredit) AddRegion(r Region, c Credit) {
	if !r.Valid() {
		return
	}
	a.ByRegion[r.index()] += c
}

// Fulfilled is the sum of all regional buckets.
func (a AccruedCredit) Fulfilled() Credit {
	var sum Credit
	for _, c := range a.ByRegion {
		sum += c
	}
	return sum
}

func (a AccruedCredit) MarshalJSON() ([]byte, error) {
	out := make(map[string]Credit, RegionCount+1)
	out["total"] = a.Total
	for _, r := range Regions() {
		out[r.String()] = a.Region(r)
	}
	return json.Marshal(out)
}

type Account struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	Balance       int64         `json:"balance"`
	AccruedCredit AccruedCredit `json:"accrued_credit"`
	IsVendor      bool          `json:"is_vendor"`
	Version       int64         `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PublicProfile is the projection of an account visible to other users.
type PublicProfile struct {
	Email         string        `json:"email"`
	IsVendor      bool          `json:"is_vendor"`
	AccruedCredit AccruedCredit `json:"accrued_credit"`
}

func (a *Account) Public() PublicProfile {
	return PublicProfile{
		Email:         a.Email,
		IsVendor:      a.IsVendor,
		AccruedCredit: a.AccruedCredit,
	}
}

// AccountSummary is returned by email prefix search.
type AccountSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IsVendor bool   `json:"is_vendor"`
}
