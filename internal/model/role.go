package model

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of identities the platform knows about. The string
// values are stored verbatim and compared exactly; there is no hierarchy
// between roles.
type Role string

const (
	RolePatient       Role = "Patient"
	RoleDoctor        Role = "Doctor"
	RoleHospitalAdmin Role = "Hospital Admin"
)

// AllRoles lists every valid role. Kept in one place so adding a role forces
// the dispatch sites that switch over it to be revisited.
var AllRoles = []Role{RolePatient, RoleDoctor, RoleHospitalAdmin}

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleHospitalAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalJSON rejects anything outside the closed set at the boundary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role := Role(s)
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", s)
	}
	*r = role
	return nil
}
