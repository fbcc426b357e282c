// Package santa generates and validates Secret Santa assignments.
//
// Santa pairs form a single cycle over all participants, so everybody gives exactly one
// gift and receives exactly one. Elf pairs are extra gifts layered on top: each giver
// helps elfCount other people, never themselves and never their own santa receiver.
package santa

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/NJCA88/SneakyElves/internal/models"
)

var (
	// ErrInsufficientParticipants is returned when there are fewer than two participants,
	// or too few to give every giver elfCount distinct elf receivers.
	ErrInsufficientParticipants = errors.New("insufficient participants")

	// ErrInvalidAssignment is matched by every *InvalidAssignmentError.
	ErrInvalidAssignment = errors.New("invalid assignment")
)

// InvalidAssignmentError names the giver whose assignments break a rule.
type InvalidAssignmentError struct {
	GiverID string
	Reason  string
}

func (e *InvalidAssignmentError) Error() string {
	if e.GiverID == "" {
		return fmt.Sprintf("invalid assignment: %s", e.Reason)
	}
	return fmt.Sprintf("invalid assignment for giver %s: %s", e.GiverID, e.Reason)
}

func (e *InvalidAssignmentError) Is(target error) bool {
	return target == ErrInvalidAssignment
}

// Pair is a caller-supplied or generated giver -> receiver link.
type Pair struct {
	GiverID    string
	ReceiverID string
	Role       models.AssignmentRole
}

// Result is a generated assignment set for one year.
type Result struct {
	Year        int
	Assignments []*models.Assignment
	SantaCount  int
	ElfCount    int
}

// Generator shuffles participants into assignments.
// The zero value is not usable; call NewGenerator.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from src. A nil src uses a randomly seeded
// PCG source, so each call to Generate produces a fresh arrangement.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rng: rand.New(src)}
}

// Generate builds santa and elf assignments for the participants.
//
// Santa: the participants are shuffled (Fisher-Yates) and participant i gives to
// participant (i+1) mod n. Elf: for each giver, elfCount receivers are sampled without
// replacement from everyone except the giver and the giver's santa receiver.
func (g *Generator) Generate(participantIDs []string, elfCount, year int) (*Result, error) {
	if err := checkParticipants(participantIDs); err != nil {
		return nil, err
	}
	if elfCount < 0 {
		return nil, &InvalidAssignmentError{Reason: fmt.Sprintf("elf count %d cannot be negative", elfCount)}
	}
	n := len(participantIDs)
	if elfCount > n-2 {
		return nil, fmt.Errorf("%w: %d participants cannot give %d elf gifts each (at most %d)",
			ErrInsufficientParticipants, n, elfCount, n-2)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order := make([]string, n)
	copy(order, participantIDs)
	g.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	result := &Result{Year: year}
	santaReceiver := make(map[string]string, n)
	for i, giver := range order {
		receiver := order[(i+1)%n]
		santaReceiver[giver] = receiver
		result.Assignments = append(result.Assignments, newAssignment(giver, receiver, models.RoleSanta, year))
	}
	result.SantaCount = n

	if elfCount == 0 {
		return result, nil
	}

	// Iterate in caller order so the elf sampling does not depend on the santa shuffle.
	for _, giver := range participantIDs {
		pool := make([]string, 0, n-2)
		for _, id := range participantIDs {
			if id != giver && id != santaReceiver[giver] {
				pool = append(pool, id)
			}
		}
		// Partial Fisher-Yates: only the first elfCount slots need to be drawn.
		for i := 0; i < elfCount; i++ {
			j := i + g.rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
			result.Assignments = append(result.Assignments, newAssignment(giver, pool[i], models.RoleElf, year))
		}
	}
	result.ElfCount = n * elfCount

	return result, nil
}

func newAssignment(giver, receiver string, role models.AssignmentRole, year int) *models.Assignment {
	return &models.Assignment{
		GiverID:    giver,
		ReceiverID: receiver,
		Role:       role,
		Year:       year,
		Active:     true,
	}
}

// checkParticipants requires at least two distinct, non-empty IDs.
func checkParticipants(ids []string) error {
	if len(ids) < 2 {
		return fmt.Errorf("%w: need at least 2 participants, got %d", ErrInsufficientParticipants, len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return &InvalidAssignmentError{Reason: "participant ID is empty"}
		}
		if seen[id] {
			return &InvalidAssignmentError{GiverID: id, Reason: "participant listed more than once"}
		}
		seen[id] = true
	}
	return nil
}
