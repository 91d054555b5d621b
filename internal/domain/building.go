package domain

import "strings"

// DefaultShareTotal is the conventional number of millièmes in a building.
const DefaultShareTotal = 1000

// MeteringMode describes how water consumption is measured in a building.
type MeteringMode string

const (
	MeteringCollective  MeteringMode = "collective"
	MeteringDivisionary MeteringMode = "divisionary"
	MeteringIndividual  MeteringMode = "individual"
)

// Valid reports whether m is a known metering mode.
func (m MeteringMode) Valid() bool {
	switch m {
	case MeteringCollective, MeteringDivisionary, MeteringIndividual:
		return true
	}
	return false
}

// Building is a condominium managed by the application.
type Building struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	TotalShares  int          `json:"total_shares"`
	MeteringMode MeteringMode `json:"metering_mode"`
}

// Owner is a co-owner of a building holding ShareUnits millièmes.
type Owner struct {
	ID         string `json:"id"`
	BuildingID string `json:"building_id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ShareUnits int    `json:"share_units"`
}

// DisplayName returns "First Last", or the last name alone.
func (o Owner) DisplayName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// TotalShareUnits sums the share units of owners.
func TotalShareUnits(owners []Owner) int {
	total := 0
	for _, o := range owners {
		total += o.ShareUnits
	}
	return total
}

// FindOwner returns the owner with the given id.
func FindOwner(owners []Owner, id string) (Owner, bool) {
	for _, o := range owners {
		if o.ID == id {
			return o, true
		}
	}
	return Owner{}, false
}

// ShareCheck reports how the owners' share units compare to the declared total.
type ShareCheck struct {
	Declared   int  `json:"declared"`
	Allocated  int  `json:"allocated"`
	Difference int  `json:"difference"`
	Balanced   bool `json:"balanced"`
}

// CheckShares compares allocated share units against the declared building total.
func CheckShares(b Building, owners []Owner) ShareCheck {
	allocated := TotalShareUnits(owners)
	return ShareCheck{
		Declared:   b.TotalShares,
		Allocated:  allocated,
		Difference: b.TotalShares - allocated,
		Balanced:   b.TotalShares == allocated,
	}
}
