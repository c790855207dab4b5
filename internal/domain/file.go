package domain

import (
	"context"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/pkg/enum"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
)

const imageFormKey = "image"

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	storage storage.Storage
}

func NewFileDomain(storage storage.Storage) FileDomain {
	return &fileDomain{storage: storage}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	imageType, err := enum.ToEnum[common.ImageType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid image type %s, expected one of %s",
			req.Type, enum.Names[common.ImageType]())
	}

	resp, err := common.UploadImage(ctx, d.storage, imageType, imageFormKey)
	if err != nil {
		return nil, err
	}

	return &model.UploadImageResponse{Path: resp.Url}, nil
}
