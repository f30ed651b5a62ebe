package risika

import (
	"iter"
	"slices"
)

// Role is the function a relation holds in a company.
// Roles other than the constants below are passed through as sent.
type Role string

const (
	RoleLegalOwner      Role = "LEGAL OWNER"
	RoleBeneficialOwner Role = "BENEFICIAL OWNER"
	RoleManagement      Role = "MANAGEMENT"
	RoleCEO             Role = "CHIEF EXECUTIVE OFFICER"
	RoleFounder         Role = "FOUNDER"
)

// MajorShareThreshold is the inclusive share percentage from which a
// beneficial owner counts towards [Relations.CurrentRealOwnersOver25Shares].
const MajorShareThreshold = 25.0

// Relation is a person or company linked to a company through one or more functions.
type Relation struct {
	// Name is the display name of the relation.
	Name string `json:"name"`
	// PersonalID identifies a person across companies. Empty for companies.
	PersonalID ID `json:"personal_id,omitempty"`
	// Type is the kind of entity, e.g. PERSON or COMPANY.
	Type string `json:"type,omitempty"`
	// Functions are the roles held, in the order the API returned them.
	Functions []Function `json:"functions"`
}

// Function is a time-bounded role held by a relation.
type Function struct {
	// Function is the role label, e.g. [RoleCEO].
	Function Role `json:"function"`
	// Title is the free-text title registered with the role.
	Title string `json:"title,omitempty"`
	// ValidFrom is when the function started.
	ValidFrom Date `json:"valid_from"`
	// ValidTo is zero while the function is active.
	ValidTo Date `json:"valid_to"`
	// Shares is the ownership percentage, for owner functions.
	Shares Percent `json:"shares"`
}

// Active reports whether the function has no end date. An end date the
// client could not parse still ends the function.
func (f Function) Active() bool {
	return f.ValidTo.IsZero()
}

// Relations is the relations list of a company.
type Relations []Relation

type matcher func(Function) bool

func activeRole(roles ...Role) matcher {
	return func(f Function) bool {
		return f.Active() && slices.Contains(roles, f.Function)
	}
}

func byName(r Relation) string { return r.Name }

func byPersonalID(r Relation) string { return string(r.PersonalID) }

// functions yields every function of every relation, in order.
func (rs Relations) functions() iter.Seq2[Relation, Function] {
	return func(yield func(Relation, Function) bool) {
		for _, r := range rs {
			for _, f := range r.Functions {
				if !yield(r, f) {
					return
				}
			}
		}
	}
}

// collect returns the keys of relations holding a matching function.
// Empty keys and duplicates are skipped; first occurrence wins.
func (rs Relations) collect(match matcher, key func(Relation) string) []string {
	out := []string{}
	for r, f := range rs.functions() {
		if !match(f) {
			continue
		}
		k := key(r)
		if k == "" || slices.Contains(out, k) {
			continue
		}
		out = append(out, k)
	}

	return out
}

// first returns the key of the first relation holding a matching function.
// Relations with an empty key are skipped, as in collect.
func (rs Relations) first(match matcher, key func(Relation) string) (string, bool) {
	for r, f := range rs.functions() {
		if match(f) {
			if k := key(r); k != "" {
				return k, true
			}
		}
	}

	return "", false
}

// CurrentLegalOwners returns the names of active legal owners.
func (rs Relations) CurrentLegalOwners() []string {
	return rs.collect(activeRole(RoleLegalOwner), byName)
}

// CurrentRealOwners returns the names of active beneficial owners.
func (rs Relations) CurrentRealOwners() []string {
	return rs.collect(activeRole(RoleBeneficialOwner), byName)
}

// CurrentRealOwnersOver25Shares returns the names of active beneficial
// owners holding at least [MajorShareThreshold] percent of the shares.
func (rs Relations) CurrentRealOwnersOver25Shares() []string {
	owner := activeRole(RoleBeneficialOwner)

	return rs.collect(func(f Function) bool {
		return owner(f) && f.Shares.Valid && f.Shares.Value >= MajorShareThreshold
	}, byName)
}

// Directors returns the names of active management members and CEOs.
func (rs Relations) Directors() []string {
	return rs.collect(activeRole(RoleManagement, RoleCEO), byName)
}

// Founders returns the names of active founders.
func (rs Relations) Founders() []string {
	return rs.collect(activeRole(RoleFounder), byName)
}

// CEO returns the name of the first active CEO.
func (rs Relations) CEO() (string, bool) {
	return rs.first(activeRole(RoleCEO), byName)
}

// CEOOrDirector returns the first active CEO, falling back to the first
// active management member.
func (rs Relations) CEOOrDirector() (string, bool) {
	if name, ok := rs.CEO(); ok {
		return name, true
	}

	return rs.first(activeRole(RoleManagement), byName)
}

// CEOOrDirectorInfo returns the personal IDs of all active CEOs. Without
// one, it returns the personal ID of the first active management member.
func (rs Relations) CEOOrDirectorInfo() ([]string, bool) {
	if ids := rs.collect(activeRole(RoleCEO), byPersonalID); len(ids) > 0 {
		return ids, true
	}

	if id, ok := rs.first(activeRole(RoleManagement), byPersonalID); ok {
		return []string{id}, true
	}

	return nil, false
}
