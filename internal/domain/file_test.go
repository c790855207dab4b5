package domain

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func generateRandomImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(2, 3, color.RGBA{255, 0, 0, 255})

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func newMultipartContext(t *testing.T, data []byte) context.Context {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile(imageFormKey, "out.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest("POST", "/images", body)
	request.Header.Add("Content-Type", writer.FormDataContentType())

	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	return xcontext.WithHTTPRequest(ctx, request)
}

func Test_fileDomain_UploadImage(t *testing.T) {
	tests := []struct {
		name       string
		imageType  string
		data       []byte
		wantPrefix string
		wantSize   int
		wantErr    errorx.Code
	}{
		{
			name:       "post image keeps its size",
			imageType:  "POST",
			data:       generateRandomImage(t, 100, 50),
			wantPrefix: "posts/1",
			wantSize:   100,
		},
		{
			name:       "profile image is resized",
			imageType:  "PROFILE",
			data:       generateRandomImage(t, 200, 100),
			wantPrefix: "profiles/1",
			wantSize:   64,
		},
		{
			name:      "unknown type",
			imageType: "BANNER",
			data:      generateRandomImage(t, 10, 10),
			wantErr:   errorx.BadRequest,
		},
		{
			name:      "empty file",
			imageType: "POST",
			data:      []byte{},
			wantErr:   errorx.BadRequest,
		},
		{
			name:      "not an image",
			imageType: "POST",
			data:      []byte("hello world"),
			wantErr:   errorx.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newMultipartContext(t, tt.data)

			var uploaded *storage.UploadObject
			domain := NewFileDomain(&testutil.MockStorage{
				UploadFunc: func(ctx context.Context, object *storage.UploadObject) (*storage.UploadResponse, error) {
					uploaded = object
					return &storage.UploadResponse{
						Url:      "/uploads/" + object.Prefix + "/" + object.FileName,
						FileName: object.FileName,
					}, nil
				},
			})

			resp, err := domain.UploadImage(ctx, &model.UploadImageRequest{Type: tt.imageType})
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "/uploads/"+tt.wantPrefix+"/out.png", resp.Path)
			require.Equal(t, "image/png", uploaded.Mime)

			img, err := png.Decode(bytes.NewReader(uploaded.Data))
			require.NoError(t, err)
			require.Equal(t, tt.wantSize, img.Bounds().Dx())
		})
	}
}
