package model

type UploadImageRequest struct {
	Type string `form:"type" validate:"required"`
}

type UploadImageResponse struct {
	Path string `json:"path"`
}
