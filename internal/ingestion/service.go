// Package ingestion is the upload edge: it validates streaming-history
// files, parses them and replaces the stored dataset.
package ingestion

import (
	"github.com/gin-gonic/gin"

	"github.com/earworm-lab/earworm/internal/core/storage"
	"github.com/earworm-lab/earworm/internal/loader"
)

type Service struct {
	store          storage.DatasetStore
	loader         *loader.Service
	filenameMarker string
	maxUploadBytes int64
}

func NewService(store storage.DatasetStore, ldr *loader.Service, filenameMarker string, maxUploadSizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if ldr == nil {
		panic("ingestion: loader must not be nil")
	}
	if filenameMarker == "" {
		panic("ingestion: filename marker must not be empty")
	}
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = 64
	}
	return &Service{
		store:          store,
		loader:         ldr,
		filenameMarker: filenameMarker,
		maxUploadBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// RegisterRoutes registers the dataset lifecycle routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/dataset", s.UploadHandler)
	r.DELETE("/v1/dataset", s.ClearHandler)
	r.GET("/v1/dataset", s.StatusHandler)
}
