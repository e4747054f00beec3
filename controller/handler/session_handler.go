package handler

import (
	"errors"

	"art-critique-service/controller/respond"
	"art-critique-service/wallet"

	"github.com/gin-gonic/gin"
)

// SessionHandler wallet connect/disconnect endpoints
type SessionHandler struct {
	sessions *wallet.SessionContext
}

// NewSessionHandler create session handler instance
func NewSessionHandler(sessions *wallet.SessionContext) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// IssueChallenge issue a one-time connect challenge
// @Summary Connect challenge
// @Description One-time nonce the wallet signs to prove key ownership
// @Tags Session
// @Accept json
// @Produce json
// @Success 200 {object} respond.Response{data=respond.ChallengeResponse}
// @Router /api/v1/session/challenge [post]
func (h *SessionHandler) IssueChallenge(c *gin.Context) {
	nonce, expires := h.sessions.IssueChallenge()
	respond.Success(c, respond.ChallengeResponse{
		Nonce:     nonce,
		ExpiresAt: expires,
	})
}

// Connect open a session from a signed challenge
// @Summary Connect wallet
// @Tags Session
// @Accept json
// @Produce json
// @Param body body handler.ConnectRequest true "Signed challenge"
// @Success 200 {object} respond.Response{data=respond.SessionResponse}
// @Router /api/v1/session/connect [post]
func (h *SessionHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body")
		return
	}
	if req.Nonce == "" || req.PubKey == "" || req.Signature == "" {
		respond.InvalidParam(c, "nonce, pubkey and signature are required")
		return
	}

	session, err := h.sessions.Connect(req.Nonce, req.PubKey, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrChallengeUnknown),
			errors.Is(err, wallet.ErrChallengeExpired),
			errors.Is(err, wallet.ErrInvalidSignature):
			respond.InvalidParam(c, err.Error())
		default:
			respond.ServerError(c, err.Error())
		}
		return
	}

	respond.Success(c, respond.ToSessionResponse(session))
}

// Me current session state
// @Summary Current session
// @Tags Session
// @Accept json
// @Produce json
// @Success 200 {object} respond.Response{data=respond.SessionResponse}
// @Router /api/v1/session/me [get]
func (h *SessionHandler) Me(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		respond.NotConnected(c, "wallet session not connected")
		return
	}
	respond.Success(c, respond.ToSessionResponse(session))
}

// Disconnect drop the current session
// @Summary Disconnect wallet
// @Tags Session
// @Accept json
// @Produce json
// @Success 200 {object} respond.Response
// @Router /api/v1/session/disconnect [post]
func (h *SessionHandler) Disconnect(c *gin.Context) {
	token := c.GetHeader(sessionTokenHeader)
	if token != "" {
		h.sessions.Disconnect(token)
	}
	respond.Success(c, nil)
}

// ConnectRequest wallet connect request body
type ConnectRequest struct {
	Nonce     string `json:"nonce"`
	PubKey    string `json:"pubkey"`    // compressed secp256k1, hex
	Signature string `json:"signature"` // DER, hex
}
