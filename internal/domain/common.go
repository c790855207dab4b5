package domain

import (
	"context"
	"errors"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/enum"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/xcontext"
)

// checkPagination validates offset and limit of a list request. A zero limit
// is replaced by the default one.
func checkPagination(ctx context.Context, offset int, limit *int) error {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 {
		return errorx.New(errorx.BadRequest, "Offset must be non-negative")
	}

	if *limit == 0 {
		*limit = apiCfg.DefaultLimit
	}

	if *limit < 0 {
		return errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if *limit > apiCfg.MaxLimit {
		return errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return nil
}

// verifyClubRole converts errors of the role verifier to client errors.
func verifyClubRole(
	ctx context.Context,
	verifier *common.ClubRoleVerifier,
	clubID int64,
	denyMsg string,
	roles ...entity.ClubRole,
) (*entity.ClubJoin, error) {
	join, err := verifier.Verify(ctx, clubID, roles...)
	if err != nil {
		return nil, clubRoleError(ctx, clubID, denyMsg, err)
	}

	return join, nil
}

func verifyClubLeader(ctx context.Context, verifier *common.ClubRoleVerifier, clubID int64, denyMsg string) error {
	if err := verifier.IsLeader(ctx, clubID); err != nil {
		return clubRoleError(ctx, clubID, denyMsg, err)
	}

	return nil
}

func clubRoleError(ctx context.Context, clubID int64, denyMsg string, err error) error {
	if errors.Is(err, common.ErrNotClubMember) || errors.Is(err, common.ErrClubRoleDenied) {
		xcontext.Logger(ctx).Debugf("Permission denied on club %d: %v", clubID, err)
		return errorx.New(errorx.PermissionDenied, denyMsg)
	}

	xcontext.Logger(ctx).Errorf("Cannot verify club role: %v", err)
	return errorx.Wrap(err)
}

// parseScope also checks that club scope comes with a club.
func parseScope(scope string, clubID int64) (entity.Scope, error) {
	s, err := enum.ToEnum[entity.Scope](scope)
	if err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid scope %s", scope)
	}

	if s == entity.ScopeClub && clubID == 0 {
		return "", errorx.New(errorx.BadRequest, "Club scope requires club id")
	}

	return s, nil
}

func newID(ctx context.Context) int64 {
	return xcontext.SnowFlake(ctx).Generate().Int64()
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	return set
}
