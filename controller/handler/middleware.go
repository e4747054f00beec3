package handler

import (
	"errors"

	"art-critique-service/canister"
	"art-critique-service/common"
	"art-critique-service/controller/respond"
	"art-critique-service/database"
	model "art-critique-service/models"
	"art-critique-service/service/critique_service"
	"art-critique-service/wallet"

	"github.com/gin-gonic/gin"
)

// Session token header sent by the web client
const sessionTokenHeader = "X-Session-Token"

const sessionContextKey = "wallet_session"

// SessionMiddleware resolve the wallet session for the request, when one
// exists. Handlers that require a session use currentSession.
func SessionMiddleware(sessions *wallet.SessionContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(sessionTokenHeader)
		if token != "" {
			if session, err := sessions.Session(token); err == nil {
				c.Set(sessionContextKey, session)
			}
		}
		c.Next()
	}
}

// currentSession session attached to the request, nil when not connected
func currentSession(c *gin.Context) *model.Session {
	if value, exists := c.Get(sessionContextKey); exists {
		if session, ok := value.(*model.Session); ok {
			return session
		}
	}
	return nil
}

// respondWorkflowError map workflow/service errors onto the response envelope.
// Canister rejection reasons pass through verbatim.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, critique_service.ErrNotConnected):
		respond.NotConnected(c, err.Error())
	case errors.Is(err, wallet.ErrNotConnected):
		respond.NotConnected(c, err.Error())
	case errors.Is(err, critique_service.ErrOperationInFlight):
		respond.Conflict(c, err.Error())
	case errors.Is(err, critique_service.ErrCritiqueNotFound),
		errors.Is(err, database.ErrNotFound):
		respond.NotFound(c, err.Error())
	case errors.Is(err, common.ErrInvalidAmount),
		errors.Is(err, common.ErrNonPositiveAmount),
		errors.Is(err, critique_service.ErrEmptyBody),
		errors.Is(err, critique_service.ErrApprovalRequired),
		errors.Is(err, critique_service.ErrNotAuthor),
		errors.Is(err, critique_service.ErrAlreadyRewarded),
		errors.Is(err, critique_service.ErrNotForSale),
		errors.Is(err, critique_service.ErrOwnArtwork),
		errors.Is(err, wallet.ErrInvalidSignature),
		errors.Is(err, wallet.ErrApprovalReplayed):
		respond.InvalidParam(c, err.Error())
	case errors.Is(err, critique_service.ErrAlreadySold):
		respond.Conflict(c, err.Error())
	default:
		var remote *canister.RemoteError
		if errors.As(err, &remote) {
			if remote.Code == canister.CodeArtworkNotFound {
				respond.NotFound(c, remote.Reason)
				return
			}
			if remote.Code == canister.CodeAlreadySold {
				respond.Conflict(c, remote.Reason)
				return
			}
			// Remote rejection, reason surfaced verbatim
			respond.ServerError(c, remote.Reason)
			return
		}
		respond.ServerError(c, err.Error())
	}
}
