package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/jahua/prism-portfolio/errs"
	"github.com/jahua/prism-portfolio/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	uploadField = "image"
	// multipartSlack covers boundaries, part headers and small form values around the file.
	multipartSlack = 1 << 20
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *storage.Uploader
}

func newUploadHandler(uploader *storage.Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// upload stores a single image or PDF sent in the multipart field "image"
// @Summary Upload file
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image or PDF"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse "Missing file, unexpected field or invalid file format"
// @Failure 413 {object} ErrorResponse "File too large"
// @Router /api/upload [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.uploader.MaxBytes()+multipartSlack)

		mr, err := r.MultipartReader()
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingFileError())
			return
		}

		// Every part is read before anything is written so that a rejected request stores nothing.
		var file *storage.File
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				h.responder.WriteError(w, multipartError(err, h.uploader.MaxBytes()))
				return
			}

			if part.FileName() == "" {
				_, err = io.Copy(io.Discard, part)
				part.Close()
				if err != nil {
					h.responder.WriteError(w, multipartError(err, h.uploader.MaxBytes()))
					return
				}
				continue
			}

			if part.FormName() != uploadField || file != nil {
				part.Close()
				h.responder.WriteError(w, errs.NewUnexpectedFieldError(part.FormName()))
				return
			}

			file, err = h.uploader.Accept(part.FileName(), part.Header.Get("Content-Type"), part)
			part.Close()
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		if file == nil {
			h.responder.WriteError(w, errs.NewMissingFileError())
			return
		}

		url, err := h.uploader.Save(r.Context(), file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("url", url).Int64("size", file.Size()).Str("contentType", file.ContentType).Msg("File uploaded")
		h.responder.WriteJSON(w, http.StatusCreated, UploadResponse{URL: url})
	}
}

func multipartError(err error, maxBytes int64) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errs.NewPayloadTooLargeError(maxBytes)
	}
	return errs.NewBadRequestError("malformed multipart body")
}
