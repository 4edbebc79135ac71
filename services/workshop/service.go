package workshop

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"workshopcart/services/catalog"
	"workshopcart/services/gateway"
	"workshopcart/services/session"
	"workshopcart/services/submission"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCartSessionService implements CartSessionService.
type DefaultCartSessionService struct {
	Controller *session.Controller
	Catalog    catalog.CatalogService
	Sender     gateway.EmailSender
	Store      SessionStore
	Logger     *zap.Logger

	locks    *sessionLocks
	submits  singleflight.Group
	inFlight sync.Map
	unsaved  sync.Map
	now      func() time.Time
	newID    func() string
}

func NewDefaultCartSessionService(
	controller *session.Controller,
	catalogSvc catalog.CatalogService,
	sender gateway.EmailSender,
	store SessionStore,
	logger *zap.Logger,
) *DefaultCartSessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCartSessionService{
		Controller: controller,
		Catalog:    catalogSvc,
		Sender:     sender,
		Store:      store,
		Logger:     logger,
		locks:      newSessionLocks(),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// InitiateSession resolves the visit once and stores a fresh cart for it.
func (s *DefaultCartSessionService) InitiateSession(ctx context.Context, cfg session.SessionConfig) (*SessionView, error) {
	state := s.Controller.Resolve(ctx, cfg)
	sess := newCartSession(s.newID(), state, s.now())

	if err := s.Store.Save(ctx, sess); err != nil {
		s.Logger.Error("InitiateSession: failed to store session", zap.Error(err))
		return nil, err
	}
	s.Logger.Info("InitiateSession: session started",
		zap.String("sessionID", sess.ID),
		zap.String("code", state.Code),
		zap.String("view", string(state.View)),
	)
	return sess.view(false), nil
}

func (s *DefaultCartSessionService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.view(s.isInFlight(sessionID)), nil
}

// AddItem adds one unit of a catalog item.
func (s *DefaultCartSessionService) AddItem(ctx context.Context, sessionID, itemID string) (*SessionView, error) {
	if _, err := s.loadEnabled(ctx, sessionID); err != nil {
		return nil, err
	}
	item, err := s.Catalog.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(sess *CartSession) error {
		sess.Cart.Add(item)
		return nil
	})
}

func (s *DefaultCartSessionService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(sess *CartSession) error {
		sess.Cart.SetQuantity(itemID, quantity)
		return nil
	})
}

func (s *DefaultCartSessionService) RemoveItem(ctx context.Context, sessionID, itemID string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(sess *CartSession) error {
		sess.Cart.Remove(itemID)
		return nil
	})
}

func (s *DefaultCartSessionService) UpdateField(ctx context.Context, sessionID, field, value string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(sess *CartSession) error {
		return sess.Form.UpdateField(field, value)
	})
}

// Submit sends the cart once. Concurrent submits for the same session join
// the pending call instead of sending a second email.
func (s *DefaultCartSessionService) Submit(ctx context.Context, sessionID string) (*SessionView, error) {
	// The send outlives a cancelled request so joined callers see its outcome.
	detached := context.WithoutCancel(ctx)
	v, err, shared := s.submits.Do(sessionID, func() (any, error) {
		return s.submit(detached, sessionID)
	})
	if shared {
		s.Logger.Debug("Submit: joined pending submission", zap.String("sessionID", sessionID))
	}
	view, _ := v.(*SessionView)
	return view, err
}

func (s *DefaultCartSessionService) submit(ctx context.Context, sessionID string) (*SessionView, error) {
	unlock := s.locks.lock(sessionID)
	sess, err := s.loadEnabled(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	if !sess.Form.IsComplete() {
		unlock()
		return sess.view(false), submission.ErrIncomplete
	}
	s.inFlight.Store(sessionID, struct{}{})
	unlock()

	sendErr := sess.Form.Submit(ctx, sess.State.Code, sess.Cart, s.Sender)

	unlock = s.locks.lock(sessionID)
	defer unlock()
	s.inFlight.Delete(sessionID)

	sess.UpdatedAt = s.now()
	if sendErr != nil {
		if err := s.save(ctx, sess); err != nil {
			s.Logger.Error("Submit: failed to store session", zap.String("sessionID", sessionID), zap.Error(err))
		}
		s.Logger.Error("Submit: failed to send cart", zap.String("sessionID", sessionID), zap.Error(sendErr))
		return sess.view(false), sendErr
	}

	// The send is acknowledged from here on: store errors are logged, never returned.
	if err := s.save(ctx, sess); err != nil {
		s.Logger.Error("Submit: sent session not stored, holding it in process", zap.String("sessionID", sessionID), zap.Error(err))
		if data, merr := json.Marshal(sess); merr == nil {
			s.unsaved.Store(sessionID, data)
		}
	}
	s.Logger.Info("Submit: cart sent", zap.String("sessionID", sessionID), zap.String("code", sess.State.Code))
	return sess.view(false), nil
}

func (s *DefaultCartSessionService) mutate(ctx context.Context, sessionID string, fn func(*CartSession) error) (*SessionView, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if s.isInFlight(sessionID) {
		return nil, ErrSubmissionInFlight
	}
	sess, err := s.loadEnabled(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess.view(false), nil
}

// load prefers a sent session whose store write failed over the stale stored copy.
func (s *DefaultCartSessionService) load(ctx context.Context, sessionID string) (*CartSession, error) {
	if data, ok := s.unsaved.Load(sessionID); ok {
		return decodeSession(data.([]byte))
	}
	return s.Store.Get(ctx, sessionID)
}

func (s *DefaultCartSessionService) save(ctx context.Context, sess *CartSession) error {
	if err := s.Store.Save(ctx, sess); err != nil {
		return err
	}
	s.unsaved.Delete(sess.ID)
	return nil
}

func (s *DefaultCartSessionService) loadEnabled(ctx context.Context, sessionID string) (*CartSession, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.State.CartEnabled() {
		return nil, fmt.Errorf("%w (view %s)", ErrCartUnavailable, sess.State.View)
	}
	return sess, nil
}

func (s *DefaultCartSessionService) isInFlight(sessionID string) bool {
	_, ok := s.inFlight.Load(sessionID)
	return ok
}
