package critique_service

import (
	"fmt"
	"strings"

	"art-critique-service/canister"
	model "art-critique-service/models"
	"art-critique-service/models/dao"
)

// EngagementService like/unlike, critique posting and upvoting. All thin
// single-call flows, but they share the per-target in-flight guard with the
// heavier workflows.
type EngagementService struct {
	store      canister.Store
	profileDAO *dao.ProfileDAO
	inflight   *inflightGuard
}

// NewEngagementService create engagement service instance
func NewEngagementService(store canister.Store, profileDAO *dao.ProfileDAO) *EngagementService {
	return &EngagementService{
		store:      store,
		profileDAO: profileDAO,
		inflight:   newInflightGuard(),
	}
}

// Like add the artwork to the session identity's liked list. The returned
// flag is optimistic; the authoritative list is whatever the next profile
// read returns.
func (s *EngagementService) Like(session *model.Session, artworkID string) (bool, error) {
	return s.setLike(session, artworkID, true)
}

// Unlike remove the artwork from the liked list
func (s *EngagementService) Unlike(session *model.Session, artworkID string) (bool, error) {
	return s.setLike(session, artworkID, false)
}

func (s *EngagementService) setLike(session *model.Session, artworkID string, liked bool) (bool, error) {
	if session == nil || !session.Connected {
		return false, ErrNotConnected
	}

	target := "like:" + session.Principal + ":" + artworkID
	if !s.inflight.begin(target) {
		return false, ErrOperationInFlight
	}
	defer s.inflight.end(target)

	var err error
	if liked {
		err = s.profileDAO.AddLike(session.Principal, artworkID)
	} else {
		err = s.profileDAO.RemoveLike(session.Principal, artworkID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update liked list: %w", err)
	}
	return liked, nil
}

// PostCritique create a critique under an artwork
func (s *EngagementService) PostCritique(session *model.Session, artworkID, body string) (string, error) {
	if session == nil || !session.Connected {
		return "", ErrNotConnected
	}
	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyBody
	}

	critiqueID, err := s.store.PostCritique(artworkID, session.Principal, body)
	if err != nil {
		return "", err
	}
	return critiqueID, nil
}

// UpvoteCritique increment a critique's upvote count
func (s *EngagementService) UpvoteCritique(session *model.Session, artworkID, critiqueID string) error {
	if session == nil || !session.Connected {
		return ErrNotConnected
	}

	target := "upvote:" + session.Principal + ":" + critiqueID
	if !s.inflight.begin(target) {
		return ErrOperationInFlight
	}
	defer s.inflight.end(target)

	return s.store.UpvoteCritique(artworkID, critiqueID, session.Principal)
}
