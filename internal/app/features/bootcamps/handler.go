// Package bootcamps serves the bootcamp CRUD endpoints plus the radius
// search and photo upload.
package bootcamps

import (
	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	"github.com/dalemusser/campdir/internal/app/system/geocode"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the bootcamp feature's dependencies.
type Handler struct {
	Store    *bootcampstore.Store
	Geocoder geocode.Geocoder
	Storage  storage.Store
	MaxBytes int64 // maximum accepted photo size
	Log      *zap.Logger
}

// NewHandler constructs a bootcamps Handler.
func NewHandler(db *mongo.Database, geocoder geocode.Geocoder, store storage.Store, maxUploadBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    bootcampstore.New(db),
		Geocoder: geocoder,
		Storage:  store,
		MaxBytes: maxUploadBytes,
		Log:      logger,
	}
}
