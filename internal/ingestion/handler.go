package ingestion

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
	httperr "github.com/earworm-lab/earworm/internal/core/errors"
	"github.com/earworm-lab/earworm/internal/loader"
)

const (
	msgNoFiles       = "No files in upload; send streaming history JSON files under the 'files' form field"
	msgNoValidData   = "No valid data found in the uploaded files"
	msgPersistFailed = "Upload failed: could not persist the dataset"
	msgClearFailed   = "Failed to clear the stored dataset"
)

// uploadError carries the structured HTTP error shape from a helper back to
// the handler. Helpers return this instead of writing to gin.Context
// directly, keeping them decoupled from HTTP.
type uploadError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *uploadError) Error() string {
	return e.message
}

// UploadHandler handles POST /v1/dataset: a multipart upload of streaming
// history shard files. The whole upload replaces any stored dataset; there
// is no merge.
func (s *Service) UploadHandler(c *gin.Context) {
	uploadID := uuid.NewString()

	files, err := s.collectFiles(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.validateFilenames(files); err != nil {
		slog.Warn("Upload rejected before parsing", "upload_id", uploadID, "reason", err.message)
		writeError(c, err)
		return
	}

	events, err := s.parseFiles(uploadID, files)
	if err != nil {
		writeError(c, err)
		return
	}

	slog.Info("Upload parsed",
		"upload_id", uploadID,
		"files", len(files),
		"records", len(events))

	if storeErr := s.store.Replace(c.Request.Context(), events); storeErr != nil {
		slog.Error("Failed to persist dataset", "upload_id", uploadID, "error", storeErr)
		writeError(c, &uploadError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpPersistenceError,
			message:    msgPersistFailed,
		})
		return
	}

	s.loader.Invalidate()

	slog.Info("Dataset replaced", "upload_id", uploadID, "records", len(events))
	c.JSON(http.StatusCreated, gin.H{
		"status":  "stored",
		"files":   len(files),
		"records": len(events),
	})
}

// collectFiles reads the multipart form, bounded by the configured upload
// size so an oversized request cannot exhaust memory.
func (s *Service) collectFiles(c *gin.Context) ([]*multipart.FileHeader, *uploadError) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		slog.Warn("Failed to read multipart upload", "error", err)
		return nil, &uploadError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidUploadError,
			message:    "Failed to read multipart upload",
			details:    err.Error(),
		}
	}

	files := form.File["files"]
	if len(files) == 0 {
		return nil, &uploadError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidUploadError,
			message:    msgNoFiles,
		}
	}
	return files, nil
}

// validateFilenames applies the acceptance rule before any parsing: every
// file name must contain the export marker and use the JSON extension.
func (s *Service) validateFilenames(files []*multipart.FileHeader) *uploadError {
	for _, fh := range files {
		name := fh.Filename
		if !strings.HasSuffix(name, ".json") || !strings.Contains(name, s.filenameMarker) {
			return &uploadError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidUploadError,
				message: fmt.Sprintf(
					"File %q is not a streaming history export; expected a .json file containing %q in its name",
					name, s.filenameMarker),
			}
		}
	}
	return nil
}

// parseFiles decodes each file as a play-event array, in upload order. A
// file that does not decode to an array contributes zero records; only an
// upload with no valid records at all is rejected.
func (s *Service) parseFiles(uploadID string, files []*multipart.FileHeader) ([]v1.PlayEvent, *uploadError) {
	all := make([]v1.PlayEvent, 0)

	for i, fh := range files {
		slog.Info("Processing upload file",
			"upload_id", uploadID,
			"file", fh.Filename,
			"index", i+1,
			"of", len(files))

		data, err := readFile(fh)
		if err != nil {
			slog.Warn("Failed to read upload file", "upload_id", uploadID, "file", fh.Filename, "error", err)
			continue
		}

		events, err := loader.ParseEvents(data)
		if err != nil {
			slog.Warn("Upload file does not contain an array", "upload_id", uploadID, "file", fh.Filename, "error", err)
			continue
		}

		all = append(all, events...)
		slog.Info("Parsed upload file",
			"upload_id", uploadID,
			"file", fh.Filename,
			"records", len(events),
			"total", len(all))
	}

	if len(all) == 0 {
		return nil, &uploadError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidUploadError,
			message:    msgNoValidData,
		}
	}
	return all, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// ClearHandler handles DELETE /v1/dataset.
func (s *Service) ClearHandler(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		slog.Error("Failed to clear dataset", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpPersistenceError,
			Message:   msgClearFailed,
		})
		return
	}

	s.loader.Invalidate()
	slog.Info("Dataset cleared")
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// StatusHandler handles GET /v1/dataset: whether an upload is stored, how
// many records it holds and when it was written.
func (s *Service) StatusHandler(c *gin.Context) {
	count, err := s.store.Count(c.Request.Context())
	if err != nil {
		slog.Error("Failed to check dataset status", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to check dataset status",
		})
		return
	}

	exists := count > 0
	response := gin.H{"exists": exists, "records": count}
	if exists {
		uploadedAt, err := s.store.UploadedAt(c.Request.Context())
		if err == nil && uploadedAt != nil {
			response["uploaded_at"] = uploadedAt
		}
	}

	c.JSON(http.StatusOK, response)
}

// writeError serializes an uploadError as the JSON HTTP response.
func writeError(c *gin.Context, err *uploadError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
