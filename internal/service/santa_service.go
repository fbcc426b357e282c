package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/internal/santa"
	"github.com/NJCA88/SneakyElves/internal/storage"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

// SantaService implements the Connect SantaService. Generating, replacing and listing a
// year's assignments is reserved for system admins; everyone can read their own.
type SantaService struct {
	store     storage.Store
	generator *santa.Generator
	now       func() time.Time
	logger    *slog.Logger
}

// NewSantaService creates a SantaService. A nil generator uses a randomly seeded one.
func NewSantaService(store storage.Store, generator *santa.Generator, logger *slog.Logger) *SantaService {
	if generator == nil {
		generator = santa.NewGenerator(nil)
	}
	return &SantaService{store: store, generator: generator, now: time.Now, logger: logger}
}

// Handler returns the mount path and HTTP handler for the service.
func (s *SantaService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = api.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(api.SantaCreateAssignmentsProcedure, connect.NewUnaryHandler(api.SantaCreateAssignmentsProcedure, s.CreateAssignments, opts...))
	mux.Handle(api.SantaCreateManualAssignmentsProcedure, connect.NewUnaryHandler(api.SantaCreateManualAssignmentsProcedure, s.CreateManualAssignments, opts...))
	mux.Handle(api.SantaResetAssignmentsProcedure, connect.NewUnaryHandler(api.SantaResetAssignmentsProcedure, s.ResetAssignments, opts...))
	mux.Handle(api.SantaGetMyAssignmentProcedure, connect.NewUnaryHandler(api.SantaGetMyAssignmentProcedure, s.GetMyAssignment, opts...))
	mux.Handle(api.SantaListAssignmentsProcedure, connect.NewUnaryHandler(api.SantaListAssignmentsProcedure, s.ListAssignments, opts...))
	mux.Handle(api.SantaListParticipantsProcedure, connect.NewUnaryHandler(api.SantaListParticipantsProcedure, s.ListParticipants, opts...))
	return api.ServicePath(api.SantaServiceName), mux
}

// CreateAssignments draws santa and elf assignments for the participants and replaces
// the year's existing set.
func (s *SantaService) CreateAssignments(ctx context.Context, req *connect.Request[api.CreateAssignmentsRequest]) (*connect.Response[api.CreateAssignmentsResponse], error) {
	msg := req.Msg
	year := s.year(msg.Year)
	s.logger.Info("CreateAssignments request received", "participants", len(msg.UserIDs), "elf_count", msg.ElfCount, "year", year)

	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}

	result, err := s.generator.Generate(msg.UserIDs, msg.ElfCount, year)
	if err != nil {
		s.logger.Warn("CreateAssignments rejected", "error", err)
		return nil, toConnectError(err)
	}
	if err := s.requireUsers(ctx, msg.UserIDs); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.ReplaceAssignments(ctx, year, result.Assignments); err != nil {
		s.logger.Error("Failed to store assignments", "year", year, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Assignments created", "year", year, "santa", result.SantaCount, "elf", result.ElfCount)
	return connect.NewResponse(&api.CreateAssignmentsResponse{
		Year:             year,
		TotalAssignments: len(result.Assignments),
		SantaAssignments: result.SantaCount,
		ElfAssignments:   result.ElfCount,
	}), nil
}

// CreateManualAssignments validates hand-made pairs and replaces the year's set with them.
// An ElfCount of zero leaves the number of elf pairs per giver unchecked.
func (s *SantaService) CreateManualAssignments(ctx context.Context, req *connect.Request[api.CreateManualAssignmentsRequest]) (*connect.Response[api.CreateManualAssignmentsResponse], error) {
	msg := req.Msg
	year := s.year(msg.Year)
	s.logger.Info("CreateManualAssignments request received", "pairs", len(msg.Assignments), "elf_count", msg.ElfCount, "year", year)

	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}

	pairs := make([]santa.Pair, len(msg.Assignments))
	ids := make([]string, 0, 2*len(msg.Assignments))
	for i, a := range msg.Assignments {
		pairs[i] = santa.Pair{
			GiverID:    a.GiverID,
			ReceiverID: a.ReceiverID,
			Role:       models.AssignmentRole(strings.ToLower(a.Role)),
		}
		ids = append(ids, a.GiverID, a.ReceiverID)
	}

	assignments, err := santa.BuildManual(pairs, msg.ElfCount, year)
	if err != nil {
		s.logger.Warn("CreateManualAssignments rejected", "error", err)
		return nil, toConnectError(err)
	}
	if err := s.requireUsers(ctx, ids); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.ReplaceAssignments(ctx, year, assignments); err != nil {
		s.logger.Error("Failed to store manual assignments", "year", year, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Manual assignments created", "year", year, "count", len(assignments))
	return connect.NewResponse(&api.CreateManualAssignmentsResponse{Year: year, Count: len(assignments)}), nil
}

// ResetAssignments deletes the year's assignments.
func (s *SantaService) ResetAssignments(ctx context.Context, req *connect.Request[api.YearRequest]) (*connect.Response[api.ResetAssignmentsResponse], error) {
	year := s.year(req.Msg.Year)
	s.logger.Info("ResetAssignments request received", "year", year)

	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}

	deleted, err := s.store.DeleteAssignments(ctx, year)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Assignments reset", "year", year, "deleted", deleted)
	return connect.NewResponse(&api.ResetAssignmentsResponse{Year: year, Deleted: deleted}), nil
}

// GetMyAssignment returns who the caller gives to this year: one santa receiver and any
// elf receivers.
func (s *SantaService) GetMyAssignment(ctx context.Context, req *connect.Request[api.YearRequest]) (*connect.Response[api.GetMyAssignmentResponse], error) {
	userID := middleware.GetUserID(ctx)
	year := s.year(req.Msg.Year)

	assignments, err := s.store.ListAssignmentsByGiver(ctx, userID, year)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.GetMyAssignmentResponse{Elves: []api.Assignment{}}
	for _, a := range assignments {
		out := toAPIAssignment(a)
		out.Giver = nil
		switch a.Role {
		case models.RoleSanta:
			resp.Santa = &out
		case models.RoleElf:
			resp.Elves = append(resp.Elves, out)
		}
	}
	return connect.NewResponse(resp), nil
}

// ListAssignments returns every active assignment of the year.
func (s *SantaService) ListAssignments(ctx context.Context, req *connect.Request[api.YearRequest]) (*connect.Response[api.ListAssignmentsResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, toConnectError(err)
	}

	assignments, err := s.store.ListAssignments(ctx, s.year(req.Msg.Year))
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Assignment, len(assignments))
	for i, a := range assignments {
		out[i] = toAPIAssignment(a)
	}
	return connect.NewResponse(&api.ListAssignmentsResponse{Assignments: out}), nil
}

// ListParticipants returns everyone giving a gift this year, without revealing to whom.
func (s *SantaService) ListParticipants(ctx context.Context, req *connect.Request[api.YearRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	assignments, err := s.store.ListAssignments(ctx, s.year(req.Msg.Year))
	if err != nil {
		return nil, toConnectError(err)
	}

	seen := make(map[string]bool)
	participants := []api.UserSummary{}
	for _, a := range assignments {
		if seen[a.GiverID] {
			continue
		}
		seen[a.GiverID] = true
		participants = append(participants, *toAPISummary(a.Giver, true))
	}
	return connect.NewResponse(&api.ListParticipantsResponse{Participants: participants}), nil
}

func (s *SantaService) year(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.now().Year()
}

// requireUsers fails with ErrNotFound naming the first unknown ID.
func (s *SantaService) requireUsers(ctx context.Context, ids []string) error {
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
		}
	}
	return nil
}
