package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

const (
	maxPhotoBytes          = 5 << 20
	maxProfilePictureBytes = 2 << 20
)

var (
	errNoFile       = errors.New("no file in multipart field")
	errFileTooLarge = errors.New("file exceeds size limit")
	errNotAnImage   = errors.New("file is not an image")
)

// uploadedImage is an image read from a multipart field, encoded for storage.
type uploadedImage struct {
	Base64      string
	ContentType string
}

// readImage reads the multipart file in field, enforcing maxBytes and an image content type.
// The content type is detected from the file contents.
func readImage(ctx *gin.Context, field string, maxBytes int64) (*uploadedImage, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errNoFile
		}
		return nil, err
	}
	if header.Size > maxBytes {
		return nil, errFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errFileTooLarge
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", errNotAnImage, detected.String())
	}

	return &uploadedImage{
		Base64:      base64.StdEncoding.EncodeToString(data),
		ContentType: detected.String(),
	}, nil
}

// writeUploadError answers with the error matching a failed readImage.
func writeUploadError(ctx *gin.Context, err error, maxBytes int64) {
	switch {
	case errors.Is(err, errNoFile):
		utils.WriteAndLogError(ctx, schemas.NoFileUploaded, http.StatusBadRequest, err)
	case errors.Is(err, errFileTooLarge):
		details := fmt.Sprintf("File must not exceed %d MB", maxBytes>>20)
		utils.WriteAndLogError(ctx, schemas.FileTooLarge.WithDetails(details), http.StatusBadRequest, err)
	case errors.Is(err, errNotAnImage):
		utils.WriteAndLogError(ctx, schemas.UnsupportedFileType, http.StatusBadRequest, err)
	default:
		utils.WriteAndLogError(ctx, schemas.BadRequest, http.StatusBadRequest, err)
	}
}
