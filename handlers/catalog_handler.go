package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
	"github.com/PooyaTarashi/railway-reservation/services/catalog"
	"github.com/PooyaTarashi/railway-reservation/utils"
)

// LoadCatalogRequest is the catalog batch payload
type LoadCatalogRequest struct {
	Trips []models.TripRecord `json:"trips" validate:"required,min=1"`
}

// TripResponse represents a trip in API responses
type TripResponse struct {
	ID          string                `json:"id"`
	Category    string                `json:"category"`
	Origin      string                `json:"origin"`
	Destination string                `json:"destination"`
	Departure   models.Timestamp      `json:"departure"`
	Remaining   map[models.TierID]int `json:"remaining"`
}

// CatalogHandler handles catalog loading and trip listing
type CatalogHandler struct {
	catalog *catalog.Service
	trips   repositories.TripRepository
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogSvc *catalog.Service, trips repositories.TripRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogSvc,
		trips:   trips,
		logger:  logger,
	}
}

// Load loads the trip catalog as a single all-or-nothing batch.
// POST /api/v1/catalog
func (h *CatalogHandler) Load(w http.ResponseWriter, r *http.Request) {
	var req LoadCatalogRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.catalog.Load(r.Context(), req.Trips); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, map[string]interface{}{
		"ready": true,
		"trips": len(req.Trips),
	})
}

// ListTrips returns the loaded trips with live capacities.
// GET /api/v1/trips
func (h *CatalogHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips := h.trips.List()
	out := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		out = append(out, TripResponse{
			ID:          trip.ID,
			Category:    trip.Category,
			Origin:      trip.Origin,
			Destination: trip.Destination,
			Departure:   trip.Departure,
			Remaining:   trip.Remaining,
		})
	}
	_ = utils.WriteOK(w, out)
}
