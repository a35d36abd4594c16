package service

import (
	"context"
	"fmt"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// uniqueIDs returns the distinct non-empty values of ids in input order.
func uniqueIDs(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func lookupVisitors(ctx context.Context, repo ports.VisitorRepository, ids []string) (map[string]*domain.Visitor, error) {
	ids = uniqueIDs(ids...)
	if len(ids) == 0 {
		return map[string]*domain.Visitor{}, nil
	}
	m, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand visitors: %w", err)
	}
	return m, nil
}

func lookupUsers(ctx context.Context, repo ports.UserRepository, ids []string) (map[string]*domain.UserRef, error) {
	out := make(map[string]*domain.UserRef)
	ids = uniqueIDs(ids...)
	if repo == nil || len(ids) == 0 {
		return out, nil
	}
	users, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand users: %w", err)
	}
	for id, u := range users {
		out[id] = &domain.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}
