package handler

import (
	"strconv"
	"strings"

	"art-critique-service/controller/respond"
	"art-critique-service/pinning"
	"art-critique-service/service/critique_service"
	"art-critique-service/service/gallery_service"

	"github.com/gin-gonic/gin"
)

// ArtworkHandler gallery, upload and workflow endpoints
type ArtworkHandler struct {
	gallery    *gallery_service.GalleryService
	engagement *critique_service.EngagementService
	reward     *critique_service.RewardService
	purchase   *critique_service.PurchaseService
	pin        *pinning.Client
}

// NewArtworkHandler create artwork handler instance
func NewArtworkHandler(
	gallery *gallery_service.GalleryService,
	engagement *critique_service.EngagementService,
	reward *critique_service.RewardService,
	purchase *critique_service.PurchaseService,
	pin *pinning.Client,
) *ArtworkHandler {
	return &ArtworkHandler{
		gallery:    gallery,
		engagement: engagement,
		reward:     reward,
		purchase:   purchase,
		pin:        pin,
	}
}

// parsePage parse cursor/size query parameters with the shared page bounds
func parsePage(c *gin.Context) (int64, int64) {
	cursor, _ := strconv.ParseInt(c.DefaultQuery("cursor", "0"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "20"), 10, 64)
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return cursor, size
}

// ListArtworks gallery feed
// @Summary Gallery feed
// @Description List artworks newest first, cursor paginated. Served from the snapshot cache when the artwork store is unreachable.
// @Tags Artwork
// @Accept json
// @Produce json
// @Param cursor query int false "Cursor (starts at 0)" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} respond.Response{data=respond.ArtworkListResponse}
// @Router /api/v1/artworks [get]
func (h *ArtworkHandler) ListArtworks(c *gin.Context) {
	cursor, size := parsePage(c)

	result, err := h.gallery.Feed(cursor, size)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToArtworkListResponse(result, h.pin.GatewayURL))
}

// MarketListings marketplace listings
// @Summary Marketplace listings
// @Description List artworks currently for sale as NFTs
// @Tags Market
// @Accept json
// @Produce json
// @Param cursor query int false "Cursor (starts at 0)" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} respond.Response{data=respond.ArtworkListResponse}
// @Router /api/v1/market [get]
func (h *ArtworkHandler) MarketListings(c *gin.Context) {
	cursor, size := parsePage(c)

	result, err := h.gallery.Market(cursor, size)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToArtworkListResponse(result, h.pin.GatewayURL))
}

// GetArtworkDetail artwork detail view
// @Summary Artwork detail
// @Description Artwork with critiques, escrow balance and the viewer's liked flag
// @Tags Artwork
// @Accept json
// @Produce json
// @Param artworkId path string true "Artwork ID"
// @Success 200 {object} respond.Response{data=respond.ArtworkDetailResponse}
// @Router /api/v1/artworks/{artworkId} [get]
func (h *ArtworkHandler) GetArtworkDetail(c *gin.Context) {
	artworkID := c.Param("artworkId")
	if artworkID == "" {
		respond.InvalidParam(c, "artworkId is required")
		return
	}

	viewer := ""
	if session := currentSession(c); session != nil {
		viewer = session.Principal
	}

	detail, err := h.gallery.ArtworkDetail(artworkID, viewer)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToArtworkDetailResponse(detail))
}

// UploadArtwork upload a new artwork
// @Summary Upload artwork
// @Description Pin the asset file, then create the artwork record on the artwork store
// @Tags Artwork
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Artwork asset file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param tags formData string false "Comma-separated tags"
// @Param bounty formData string false "Escrow bounty in display units, e.g. 2.5"
// @Param for_sale formData bool false "List as NFT"
// @Param price formData string false "Sale price in display units (required when for_sale)"
// @Success 200 {object} respond.Response{data=gallery_service.UploadResult}
// @Router /api/v1/artworks [post]
func (h *ArtworkHandler) UploadArtwork(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		respond.NotConnected(c, "wallet session not connected")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.InvalidParam(c, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.ServerError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	tags := make([]string, 0)
	for _, tag := range strings.Split(c.PostForm("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	req := gallery_service.UploadRequest{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		Contact:       c.PostForm("contact"),
		Tags:          tags,
		License:       c.PostForm("license"),
		MediaKind:     c.PostForm("media_kind"),
		MimeType:      fileHeader.Header.Get("Content-Type"),
		TextExcerpt:   c.PostForm("text_excerpt"),
		BountyDisplay: c.PostForm("bounty"),
		ForSale:       c.PostForm("for_sale") == "true",
		PriceDisplay:  c.PostForm("price"),
		FileName:      fileHeader.Filename,
		File:          file,
	}

	result, err := h.gallery.Upload(session, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, result)
}

// PostCritique post a critique under an artwork
// @Summary Post critique
// @Tags Critique
// @Accept json
// @Produce json
// @Param artworkId path string true "Artwork ID"
// @Param body body handler.CritiqueRequest true "Critique body"
// @Success 200 {object} respond.Response
// @Router /api/v1/artworks/{artworkId}/critiques [post]
func (h *ArtworkHandler) PostCritique(c *gin.Context) {
	artworkID := c.Param("artworkId")
	if artworkID == "" {
		respond.InvalidParam(c, "artworkId is required")
		return
	}

	var req CritiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body")
		return
	}

	critiqueID, err := h.engagement.PostCritique(currentSession(c), artworkID, req.Body)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, gin.H{"critique_id": critiqueID})
}

// UpvoteCritique upvote a critique
// @Summary Upvote critique
// @Tags Critique
// @Accept json
// @Produce json
// @Param artworkId path string true "Artwork ID"
// @Param critiqueId path string true "Critique ID"
// @Success 200 {object} respond.Response
// @Router /api/v1/artworks/{artworkId}/critiques/{critiqueId}/upvote [post]
func (h *ArtworkHandler) UpvoteCritique(c *gin.Context) {
	artworkID := c.Param("artworkId")
	critiqueID := c.Param("critiqueId")
	if artworkID == "" || critiqueID == "" {
		respond.InvalidParam(c, "artworkId and critiqueId are required")
		return
	}

	if err := h.engagement.UpvoteCritique(currentSession(c), artworkID, critiqueID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, nil)
}

// LikeArtwork add the artwork to the caller's liked list
// @Summary Like artwork
// @Tags Artwork
// @Accept json
// @Produce json
// @Param artworkId path string true "Artwork ID"
// @Success 200 {object} respond.Response
// @Router /api/v1/artworks/{artworkId}/like [post]
func (h *ArtworkHandler) LikeArtwork(c *gin.Context) {
	h.setLike(c, true)
}

// UnlikeArtwork remove the artwork from the caller's liked list
// @Summary Unlike artwork
// @Tags Artwork
// @Accept json
// @Produce json
// @Param artworkId path string true "Artwork ID"
// @Success 200 {object} respond.Response
// @Router /api/v1/artworks/{artworkId}/like [delete]
func (h *ArtworkHandler) UnlikeArtwork(c *gin.Context) {
	h.setLike(c, false)
}

func (h *ArtworkHandler) setLike(c *gin.Context, liked bool) {
	artworkID := c.Param("artworkId")
	if artworkID == "" {
		respond.InvalidParam(c, "artworkId is required")
		return
	}

	var (
		state bool
		err   error
	)
	if liked {
		state, err = h.engagement.Like(currentSession(c), artworkID)
	} else {
		state, err = h.engagement.Unlike(currentSession(c), artworkID)
	}
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	// Optimistic flag; the authoritative list comes from the next profile read
	respond.Success(c, gin.H{"liked": state})
}

// RewardCritique reward a critique from escrow or by direct transfer
// @Summary Reward critique
// @Description Escrow path when the bounty balance covers the amount, otherwise a direct wallet transfer with signed approval
// @Tags Critique
// @Accept json
// @Produce json
// @Param artworkId path string true "Artwork ID"
// @Param critiqueId path string true "Critique ID"
// @Param body body handler.RewardRequest true "Amount and wallet approval"
// @Success 200 {object} respond.Response{data=respond.RewardResponse}
// @Router /api/v1/artworks/{artworkId}/critiques/{critiqueId}/reward [post]
func (h *ArtworkHandler) RewardCritique(c *gin.Context) {
	artworkID := c.Param("artworkId")
	critiqueID := c.Param("critiqueId")
	if artworkID == "" || critiqueID == "" {
		respond.InvalidParam(c, "artworkId and critiqueId are required")
		return
	}

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body")
		return
	}

	outcome, err := h.reward.Reward(critique_service.RewardRequest{
		ArtworkID:         artworkID,
		CritiqueID:        critiqueID,
		AmountDisplay:     req.Amount,
		Session:           currentSession(c),
		ApprovalNonce:     req.ApprovalNonce,
		ApprovalSignature: req.ApprovalSignature,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToRewardResponse(outcome))
}

// PurchaseArtwork purchase an artwork listed as NFT
// @Summary Purchase NFT
// @Description Payment validation, then the strict ownership write, then the best-effort purchased-list write
// @Tags Market
// @Accept json
// @Produce json
// @Param artworkId path string true "Artwork ID"
// @Param body body handler.PurchaseHTTPRequest true "Wallet payment approval"
// @Success 200 {object} respond.Response{data=respond.PurchaseResponse}
// @Router /api/v1/market/{artworkId}/purchase [post]
func (h *ArtworkHandler) PurchaseArtwork(c *gin.Context) {
	artworkID := c.Param("artworkId")
	if artworkID == "" {
		respond.InvalidParam(c, "artworkId is required")
		return
	}

	var req PurchaseHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body")
		return
	}

	outcome, err := h.purchase.Purchase(critique_service.PurchaseRequest{
		ArtworkID:         artworkID,
		Session:           currentSession(c),
		ApprovalNonce:     req.ApprovalNonce,
		ApprovalSignature: req.ApprovalSignature,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	respond.Success(c, respond.ToPurchaseResponse(outcome, h.pin.GatewayURL(outcome.Artwork.AssetCID)))
}

// CritiqueRequest critique post request body
type CritiqueRequest struct {
	Body string `json:"body"`
}

// RewardRequest reward request body
type RewardRequest struct {
	Amount            string `json:"amount"` // display units, e.g. "2.5"
	ApprovalNonce     string `json:"approval_nonce,omitempty"`
	ApprovalSignature string `json:"approval_signature,omitempty"`
}

// PurchaseHTTPRequest purchase request body
type PurchaseHTTPRequest struct {
	ApprovalNonce     string `json:"approval_nonce"`
	ApprovalSignature string `json:"approval_signature"`
}
