package community

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"sahayata/models"
)

// ListGroups returns every group as seen by userID.
func (s *CommunityService) ListGroups(ctx context.Context, userID string) ([]models.GroupSummary, error) {
	groups, err := s.Groups.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.GroupSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, models.GroupSummary{
			ID:           g.ID,
			Name:         g.Name,
			Description:  g.Description,
			Schedule:     g.Schedule,
			Participants: len(g.Members),
			IsMember:     slices.Contains(g.Members, userID),
		})
	}
	return summaries, nil
}

// CreateGroup starts an empty group. The creator is not added as a member.
func (s *CommunityService) CreateGroup(ctx context.Context, userID string, in models.GroupInput) (*models.SupportGroup, error) {
	if err := s.requireCompleteProfile(ctx, userID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Schedule = strings.TrimSpace(in.Schedule)
	if in.Name == "" || in.Description == "" || in.Schedule == "" {
		return nil, ErrInvalidGroupFields
	}

	group := models.SupportGroup{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Schedule:    in.Schedule,
		CreatedBy:   userID,
		Members:     []string{},
		CreatedAt:   time.Now(),
	}
	if err := s.Groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return &group, nil
}

// ToggleMembership joins the group, or leaves it when already a member, and
// returns the resulting member list.
func (s *CommunityService) ToggleMembership(ctx context.Context, userID, groupID string) ([]string, error) {
	if err := s.requireCompleteProfile(ctx, userID); err != nil {
		return nil, err
	}
	members, err := s.Groups.ToggleMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		return nil, ErrGroupNotFound
	}
	return members, nil
}
