package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/groove-lab/backend/pkg/enum"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/nfnt/resize"
	"golang.org/x/exp/slices"
)

type ImageType string

var (
	ImagePost    = enum.New(ImageType("POST"))
	ImageEvent   = enum.New(ImageType("EVENT"))
	ImageClub    = enum.New(ImageType("CLUB"))
	ImageProfile = enum.New(ImageType("PROFILE"))
)

// Prefix is the directory of storage which images of this type are put in.
func (t ImageType) Prefix() string {
	return strings.ToLower(string(t)) + "s"
}

// keyPrefix is the storage prefix of images of this type uploaded by user.
func (t ImageType) keyPrefix(userID int64) string {
	return t.Prefix() + "/" + strconv.FormatInt(userID, 10)
}

// VerifyOwnImages checks that every path is the url of an image of type t
// uploaded by the requesting user. Empty paths are skipped.
func VerifyOwnImages(ctx context.Context, t ImageType, field string, paths ...string) error {
	segment := "/" + t.keyPrefix(xcontext.RequestUserID(ctx)) + "/"
	for _, p := range paths {
		if p == "" {
			continue
		}

		if !isOwnImage(p, segment) {
			return errorx.NewInvalidField(field, "Image %s was not uploaded by you", p)
		}
	}

	return nil
}

func isOwnImage(p, segment string) bool {
	if strings.ContainsAny(p, "?#\\") || strings.Contains(p, "..") {
		return false
	}

	i := strings.LastIndex(p, segment)
	if i < 0 {
		return false
	}

	name := p[i+len(segment):]
	return name != "" && !strings.Contains(name, "/")
}

// UploadImage reads the image in multipart form field named key and puts it
// into the storage. Profile images are shrunk to fit the configured size.
func UploadImage(
	ctx context.Context, fileStorage storage.Storage, imageType ImageType, key string,
) (*storage.UploadResponse, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read the file: %v", err)
		return nil, errorx.Wrap(err)
	}

	if len(data) == 0 {
		return nil, errorx.New(errorx.BadRequest, "File is empty")
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}

	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "We just accept jpeg, gif or png")
	}

	if imageType == ImageProfile {
		size := xcontext.Configs(ctx).File.ProfileImageSize
		img = resize.Thumbnail(size, size, img, resize.Lanczos3)
		if data, err = encodeImg(mime, img); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
			return nil, errorx.Wrap(err)
		}
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Prefix:   imageType.keyPrefix(xcontext.RequestUserID(ctx)),
		FileName: header.Filename,
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Wrap(err)
	}

	return resp, nil
}

// DeleteFile removes the file from storage. Failures are only logged, a
// missing file must never abort the caller.
func DeleteFile(ctx context.Context, fileStorage storage.Storage, path string) {
	if path == "" {
		return
	}

	if err := fileStorage.Delete(ctx, path); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot delete file %s: %v", path, err)
	}
}

// ProcessImageUpdate returns the new image list of an entity: the kept images
// followed by the new ones. New images must be uploaded by the requesting
// user. Current images which are not kept are deleted.
func ProcessImageUpdate(
	ctx context.Context, fileStorage storage.Storage, imageType ImageType, current, newImages, keepImages []string,
) ([]string, error) {
	if err := VerifyOwnImages(ctx, imageType, "new_images", newImages...); err != nil {
		return nil, err
	}

	result := []string{}
	for _, path := range current {
		if slices.Contains(keepImages, path) {
			result = append(result, path)
		} else {
			DeleteFile(ctx, fileStorage, path)
		}
	}

	return append(result, newImages...), nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("unsupported image type %s", mime)
	}

	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported image type %s", mime)
	}

	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
