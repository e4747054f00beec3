package handler

import (
	"art-critique-service/controller/respond"
	"art-critique-service/pinning"
	"art-critique-service/service/gallery_service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler profile and studio endpoints
type ProfileHandler struct {
	gallery *gallery_service.GalleryService
	pin     *pinning.Client
}

// NewProfileHandler create profile handler instance
func NewProfileHandler(gallery *gallery_service.GalleryService, pin *pinning.Client) *ProfileHandler {
	return &ProfileHandler{
		gallery: gallery,
		pin:     pin,
	}
}

// GetStudio studio view for the connected identity
// @Summary Studio view
// @Description The caller's profile (created lazily on first read) plus their own artworks
// @Tags Profile
// @Accept json
// @Produce json
// @Param cursor query int false "Cursor (starts at 0)" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} respond.Response{data=respond.StudioResponse}
// @Router /api/v1/studio [get]
func (h *ProfileHandler) GetStudio(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		respond.NotConnected(c, "wallet session not connected")
		return
	}

	cursor, size := parsePage(c)

	view, err := h.gallery.Studio(session.Principal, cursor, size)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToStudioResponse(view, h.pin.GatewayURL))
}

// GetProfile profile by principal
// @Summary Get profile
// @Description Profile row for a principal, created lazily on first read
// @Tags Profile
// @Accept json
// @Produce json
// @Param principal path string true "Wallet principal"
// @Success 200 {object} respond.Response{data=respond.ProfileResponse}
// @Router /api/v1/profiles/{principal} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	principal := c.Param("principal")
	if principal == "" {
		respond.InvalidParam(c, "principal is required")
		return
	}

	studio, err := h.gallery.Studio(principal, 0, 20)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToStudioResponse(studio, h.pin.GatewayURL))
}

// UpdateProfile update the caller's own profile
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body handler.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} respond.Response{data=respond.ProfileResponse}
// @Router /api/v1/profiles [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		respond.NotConnected(c, "wallet session not connected")
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body")
		return
	}

	profile, err := h.gallery.UpdateProfile(session, req.Name, req.Bio)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToProfileResponse(profile))
}

// ProfileUpdateRequest profile update request body
type ProfileUpdateRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}
