package domain

import (
	"context"
	"errors"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/enum"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ClubDomain interface {
	Create(context.Context, *model.CreateClubRequest) (*model.CreateClubResponse, error)
	Get(context.Context, *model.GetClubRequest) (*model.GetClubResponse, error)
	GetList(context.Context, *model.GetClubsRequest) (*model.GetClubsResponse, error)
	Update(context.Context, *model.UpdateClubRequest) (*model.UpdateClubResponse, error)
	DeleteImage(context.Context, *model.DeleteClubImageRequest) (*model.DeleteClubImageResponse, error)
	Delete(context.Context, *model.DeleteClubRequest) (*model.DeleteClubResponse, error)
	GetMyClubs(context.Context, *model.GetMyClubsRequest) (*model.GetMyClubsResponse, error)
}

type clubDomain struct {
	clubRepo         repository.ClubRepository
	clubJoinRepo     repository.ClubJoinRepository
	postRepo         repository.PostRepository
	eventRepo        repository.EventRepository
	eventJoinRepo    repository.EventJoinRepository
	clubRoleVerifier *common.ClubRoleVerifier
	storage          storage.Storage
}

func NewClubDomain(
	clubRepo repository.ClubRepository,
	clubJoinRepo repository.ClubJoinRepository,
	postRepo repository.PostRepository,
	eventRepo repository.EventRepository,
	eventJoinRepo repository.EventJoinRepository,
	storage storage.Storage,
) ClubDomain {
	return &clubDomain{
		clubRepo:         clubRepo,
		clubJoinRepo:     clubJoinRepo,
		postRepo:         postRepo,
		eventRepo:        eventRepo,
		eventJoinRepo:    eventJoinRepo,
		clubRoleVerifier: common.NewClubRoleVerifier(clubJoinRepo),
		storage:          storage,
	}
}

func (d *clubDomain) Create(
	ctx context.Context, req *model.CreateClubRequest,
) (*model.CreateClubResponse, error) {
	clubType, err := enum.ToEnum[entity.ClubType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid club type %s, expected one of %s",
			req.Type, enum.Names[entity.ClubType]())
	}

	if err := common.VerifyOwnImages(ctx, common.ImageClub, "image", req.Image); err != nil {
		return nil, err
	}

	club := &entity.Club{
		Base:         entity.Base{ID: newID(ctx)},
		Name:         req.Name,
		Intro:        req.Intro,
		Description:  req.Description,
		LocationName: req.LocationName,
		Type:         clubType,
		Image:        req.Image,
		Tags:         req.Tags,
		MemberCount:  1,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.clubRepo.Create(ctx, club); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create club: %v", err)
		return nil, errorx.Wrap(err)
	}

	err = d.clubJoinRepo.Create(ctx, &entity.ClubJoin{
		Base:   entity.Base{ID: newID(ctx)},
		UserID: xcontext.RequestUserID(ctx),
		ClubID: club.ID,
		Role:   entity.ClubRoleLeader,
		Status: entity.ClubJoinActive,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot assign leader of club: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.CreateClubResponse(model.ConvertClub(club))
	return &resp, nil
}

func (d *clubDomain) Get(ctx context.Context, req *model.GetClubRequest) (*model.GetClubResponse, error) {
	club, err := d.getClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	resp := model.GetClubResponse(model.ConvertClub(club))
	return &resp, nil
}

func (d *clubDomain) GetList(
	ctx context.Context, req *model.GetClubsRequest,
) (*model.GetClubsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	result, err := d.clubRepo.GetList(ctx, repository.SearchClubFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get club list: %v", err)
		return nil, errorx.Wrap(err)
	}

	clubs := []model.Club{}
	for i := range result {
		clubs = append(clubs, model.ConvertClub(&result[i]))
	}

	return &model.GetClubsResponse{Clubs: clubs}, nil
}

func (d *clubDomain) Update(
	ctx context.Context, req *model.UpdateClubRequest,
) (*model.UpdateClubResponse, error) {
	club, err := d.getClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	_, err = verifyClubRole(ctx, d.clubRoleVerifier, club.ID,
		"Only leader or managers can update the club", entity.ClubAdminGroup...)
	if err != nil {
		return nil, err
	}

	update := map[string]any{}
	if req.Name != "" {
		update["name"] = req.Name
		club.Name = req.Name
	}

	if req.Intro != nil {
		update["intro"] = *req.Intro
		club.Intro = *req.Intro
	}

	if req.Description != nil {
		update["description"] = *req.Description
		club.Description = *req.Description
	}

	if req.LocationName != nil {
		update["location_name"] = *req.LocationName
		club.LocationName = *req.LocationName
	}

	if req.Type != "" {
		clubType, err := enum.ToEnum[entity.ClubType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid club type %s, expected one of %s",
				req.Type, enum.Names[entity.ClubType]())
		}

		update["type"] = clubType
		club.Type = clubType
	}

	if req.Tags != nil {
		update["tags"] = entity.Array[string](req.Tags)
		club.Tags = req.Tags
	}

	oldImage := ""
	if req.Image != nil && *req.Image != club.Image {
		if err := common.VerifyOwnImages(ctx, common.ImageClub, "image", *req.Image); err != nil {
			return nil, err
		}

		oldImage = club.Image
		update["image"] = *req.Image
		club.Image = *req.Image
	}

	if len(update) > 0 {
		if err := d.clubRepo.UpdateByID(ctx, club.ID, update); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update club: %v", err)
			return nil, errorx.Wrap(err)
		}
	}

	common.DeleteFile(ctx, d.storage, oldImage)

	resp := model.UpdateClubResponse(model.ConvertClub(club))
	return &resp, nil
}

func (d *clubDomain) DeleteImage(
	ctx context.Context, req *model.DeleteClubImageRequest,
) (*model.DeleteClubImageResponse, error) {
	club, err := d.getClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	_, err = verifyClubRole(ctx, d.clubRoleVerifier, club.ID,
		"Only leader or managers can update the club", entity.ClubAdminGroup...)
	if err != nil {
		return nil, err
	}

	if club.Image == "" {
		return &model.DeleteClubImageResponse{}, nil
	}

	if err := d.clubRepo.UpdateByID(ctx, club.ID, map[string]any{"image": ""}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove club image: %v", err)
		return nil, errorx.Wrap(err)
	}

	common.DeleteFile(ctx, d.storage, club.Image)
	return &model.DeleteClubImageResponse{}, nil
}

// Delete soft-deletes the club with its posts, events, memberships and event
// participations in one transaction.
func (d *clubDomain) Delete(
	ctx context.Context, req *model.DeleteClubRequest,
) (*model.DeleteClubResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	club, err := d.getClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	err = verifyClubLeader(ctx, d.clubRoleVerifier, club.ID, "Only leader can delete the club")
	if err != nil {
		return nil, err
	}

	common.DeleteFile(ctx, d.storage, club.Image)

	if err := d.postRepo.SoftDeleteByClubID(ctx, club.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete posts of club: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.eventRepo.SoftDeleteByClubID(ctx, club.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete events of club: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.clubJoinRepo.SoftDeleteByClubID(ctx, club.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete members of club: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.eventJoinRepo.SoftDeleteByClubID(ctx, club.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event joins of club: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.clubRepo.SoftDelete(ctx, club.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete club: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.DeleteClubResponse{}, nil
}

func (d *clubDomain) GetMyClubs(
	ctx context.Context, req *model.GetMyClubsRequest,
) (*model.GetMyClubsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	joins, err := d.clubJoinRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx),
		[]entity.ClubJoinStatus{entity.ClubJoinActive, entity.ClubJoinPending}, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get clubs of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	clubs := []model.ClubJoin{}
	for i := range joins {
		club := model.ConvertClub(&joins[i].Club)
		clubs = append(clubs, model.ConvertClubJoin(&joins[i], &club, nil))
	}

	return &model.GetMyClubsResponse{Clubs: clubs}, nil
}

func (d *clubDomain) getClub(ctx context.Context, clubID int64) (*entity.Club, error) {
	club, err := d.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found club")
		}

		xcontext.Logger(ctx).Errorf("Cannot get club: %v", err)
		return nil, errorx.Wrap(err)
	}

	return club, nil
}
