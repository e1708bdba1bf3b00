package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	messageRepo "hoardify/database/repository/message"
	"hoardify/models"

	"go.uber.org/zap"
)

// MessageService backs the contact-message inbox.
type MessageService interface {
	ListMessages(ctx context.Context, search string, unreadOnly bool) ([]models.ContactMessage, error)
	GetMessage(ctx context.Context, id string) (*models.ContactMessage, error)
	MarkRead(ctx context.Context, id string, read bool) error
	DeleteMessage(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int, error)
	Subscribe() *Subscription
}

// DefaultMessageService keeps the latest inbox in memory while Run is active.
type DefaultMessageService struct {
	Repo   messageRepo.MessageRepository
	Logger *zap.Logger

	mu     sync.RWMutex
	latest []models.ContactMessage
	synced bool
	subs   map[*Subscription]chan []models.ContactMessage
}

// NewDefaultMessageService creates the inbox service.
func NewDefaultMessageService(repo messageRepo.MessageRepository, logger *zap.Logger) *DefaultMessageService {
	return &DefaultMessageService{
		Repo:   repo,
		Logger: logger,
		subs:   make(map[*Subscription]chan []models.ContactMessage),
	}
}

// Run listens for inbox changes until ctx is cancelled, re-attaching after errors.
func (s *DefaultMessageService) Run(ctx context.Context) {
	for {
		updates, errs := s.Repo.Watch(ctx)
		for list := range updates {
			s.replace(list)
		}
		if err, ok := <-errs; ok && err != nil {
			s.Logger.Error("Contact message listener failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func (s *DefaultMessageService) replace(list []models.ContactMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = list
	s.synced = true
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- list:
		default:
		}
	}
}

func (s *DefaultMessageService) ListMessages(ctx context.Context, search string, unreadOnly bool) ([]models.ContactMessage, error) {
	s.mu.RLock()
	list, synced := s.latest, s.synced
	s.mu.RUnlock()

	if !synced {
		var err error
		list, err = s.Repo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
		}
	}
	return FilterMessages(list, search, unreadOnly), nil
}

// FilterMessages keeps messages matching search (name, email, subject or body) and,
// when unreadOnly is set, only unread ones.
func FilterMessages(list []models.ContactMessage, search string, unreadOnly bool) []models.ContactMessage {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.ContactMessage, 0, len(list))
	for _, m := range list {
		if unreadOnly && m.Read {
			continue
		}
		if q != "" && !containsAny(q, m.Name, m.Email, m.Subject, m.Message) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *DefaultMessageService) GetMessage(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return m, nil
}

func (s *DefaultMessageService) MarkRead(ctx context.Context, id string, read bool) error {
	return writeErr(s.Repo.SetRead(ctx, id, read))
}

func (s *DefaultMessageService) DeleteMessage(ctx context.Context, id string) error {
	return writeErr(s.Repo.Delete(ctx, id))
}

func (s *DefaultMessageService) UnreadCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	if s.synced {
		n := 0
		for _, m := range s.latest {
			if !m.Read {
				n++
			}
		}
		s.mu.RUnlock()
		return n, nil
	}
	s.mu.RUnlock()

	n, err := s.Repo.CountUnread(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return n, nil
}

// Subscription delivers the latest inbox on C until Unsubscribe is called.
type Subscription struct {
	C <-chan []models.ContactMessage

	once   sync.Once
	cancel func()
}

// Unsubscribe stops delivery and closes C.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(sub.cancel)
}

func (s *DefaultMessageService) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan []models.ContactMessage, 1)
	sub := &Subscription{C: ch}
	sub.cancel = func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[sub]; ok {
			delete(s.subs, sub)
			close(c)
		}
	}
	if s.subs == nil {
		s.subs = make(map[*Subscription]chan []models.ContactMessage)
	}
	s.subs[sub] = ch
	if s.synced {
		ch <- s.latest
	}
	return sub
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func writeErr(err error) error {
	if err == nil || errors.Is(err, models.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
}
