package common

import (
	"context"
	"errors"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var ErrNotClubMember = errors.New("user is not an active member of club")
var ErrClubRoleDenied = errors.New("user role does not have permission")

type ClubRoleVerifier struct {
	clubJoinRepo repository.ClubJoinRepository
}

func NewClubRoleVerifier(clubJoinRepo repository.ClubJoinRepository) *ClubRoleVerifier {
	return &ClubRoleVerifier{clubJoinRepo: clubJoinRepo}
}

// Verify checks that the requesting user is an active member of club holding
// one of the required roles. It returns the membership of user.
func (verifier *ClubRoleVerifier) Verify(
	ctx context.Context, clubID int64, requiredRoles ...entity.ClubRole,
) (*entity.ClubJoin, error) {
	join, err := verifier.clubJoinRepo.GetActive(ctx, xcontext.RequestUserID(ctx), clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClubMember
		}

		return nil, err
	}

	if !slices.Contains(requiredRoles, join.Role) {
		return nil, ErrClubRoleDenied
	}

	return join, nil
}

// IsLeader is the check of destructive club operations.
func (verifier *ClubRoleVerifier) IsLeader(ctx context.Context, clubID int64) error {
	_, err := verifier.Verify(ctx, clubID, entity.ClubLeaderGroup...)
	return err
}
