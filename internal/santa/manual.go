package santa

import (
	"fmt"

	"github.com/NJCA88/SneakyElves/internal/models"
)

// ValidateManual checks hand-made pairs before they replace a year's assignments.
//
// Every giver needs exactly one santa receiver and, when elfCount > 0, exactly elfCount
// elf receivers. Nobody may be paired with themselves, no giver may be linked to the
// same receiver twice and no receiver may have two santas. The first offending giver,
// in input order, is reported.
func ValidateManual(pairs []Pair, elfCount int) error {
	if len(pairs) == 0 {
		return &InvalidAssignmentError{Reason: "no assignments supplied"}
	}
	if elfCount < 0 {
		return &InvalidAssignmentError{Reason: fmt.Sprintf("elf count %d cannot be negative", elfCount)}
	}

	type tally struct {
		santa int
		elves int
	}
	var givers []string
	counts := make(map[string]*tally)
	linked := make(map[[2]string]bool, len(pairs))
	var dupSanta *Pair
	santaOf := make(map[string]string)

	for _, p := range pairs {
		if p.GiverID == "" || p.ReceiverID == "" {
			return &InvalidAssignmentError{GiverID: p.GiverID, Reason: "giver and receiver are required"}
		}
		if !p.Role.Valid() {
			return &InvalidAssignmentError{GiverID: p.GiverID, Reason: fmt.Sprintf("unknown role %q", p.Role)}
		}
		if p.GiverID == p.ReceiverID {
			return &InvalidAssignmentError{GiverID: p.GiverID, Reason: "giver cannot be paired with themselves"}
		}
		key := [2]string{p.GiverID, p.ReceiverID}
		if linked[key] {
			return &InvalidAssignmentError{GiverID: p.GiverID, Reason: fmt.Sprintf("paired with %s more than once", p.ReceiverID)}
		}
		linked[key] = true

		t, ok := counts[p.GiverID]
		if !ok {
			t = &tally{}
			counts[p.GiverID] = t
			givers = append(givers, p.GiverID)
		}
		if p.Role == models.RoleSanta {
			t.santa++
			if _, taken := santaOf[p.ReceiverID]; !taken {
				santaOf[p.ReceiverID] = p.GiverID
			} else if dupSanta == nil {
				dupSanta = &p
			}
		} else {
			t.elves++
		}
	}

	for _, giver := range givers {
		t := counts[giver]
		if t.santa != 1 {
			return &InvalidAssignmentError{GiverID: giver, Reason: fmt.Sprintf("has %d santa receivers, want exactly 1", t.santa)}
		}
		if elfCount > 0 && t.elves != elfCount {
			return &InvalidAssignmentError{GiverID: giver, Reason: fmt.Sprintf("has %d elf receivers, want %d", t.elves, elfCount)}
		}
	}
	// Santa links must form one permutation: a receiver with two santas leaves someone without one.
	if dupSanta != nil {
		return &InvalidAssignmentError{
			GiverID: dupSanta.GiverID,
			Reason:  fmt.Sprintf("%s already has santa %s", dupSanta.ReceiverID, santaOf[dupSanta.ReceiverID]),
		}
	}

	return nil
}

// BuildManual validates pairs and converts them into assignments for the year.
func BuildManual(pairs []Pair, elfCount, year int) ([]*models.Assignment, error) {
	if err := ValidateManual(pairs, elfCount); err != nil {
		return nil, err
	}
	assignments := make([]*models.Assignment, len(pairs))
	for i, p := range pairs {
		assignments[i] = newAssignment(p.GiverID, p.ReceiverID, p.Role, year)
	}
	return assignments, nil
}
