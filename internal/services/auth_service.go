package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

var (
	ErrBadCreds   = errors.New("invalid username or password")
	ErrTaken      = errors.New("username or email already in use")
	ErrNoSession  = errors.New("no active session")
	ErrBadSession = errors.New("session expired or unknown")
)

type session struct {
	userID    int64
	expiresAt time.Time
}

// AuthService owns registration, login and the in-process session table.
// Sessions are not domain entities; they belong to the request layer and die
// with the process.
type AuthService struct {
	Store storage.Storage

	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
}

func NewAuthService(st storage.Storage, ttl time.Duration) *AuthService {
	return &AuthService{Store: st, sessions: map[string]session{}, ttl: ttl}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterCustomer creates a customer user and its Customer record.
func (s *AuthService) RegisterCustomer(in RegisterInput, address, phone *string) (domain.User, error) {
	u, err := s.register(in, domain.RoleCustomer)
	if err != nil {
		return domain.User{}, err
	}
	if _, err := s.Store.CreateCustomer(storage.CreateCustomerParams{
		UserID:  u.ID,
		Address: address,
		Phone:   phone,
	}); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// RegisterShopOwner creates the user, a store with no slug yet, and the
// ShopOwner link with a 14-day trial.
func (s *AuthService) RegisterShopOwner(in RegisterInput, storeName, whatsapp string) (domain.User, error) {
	u, err := s.register(in, domain.RoleShopOwner)
	if err != nil {
		return domain.User{}, err
	}
	st, err := s.Store.CreateStore(storage.CreateStoreParams{
		Name:           storeName,
		WhatsAppNumber: whatsapp,
	})
	if err != nil {
		return domain.User{}, err
	}
	trialEnds := time.Now().AddDate(0, 0, 14)
	if _, err := s.Store.CreateShopOwner(storage.CreateShopOwnerParams{
		UserID:                u.ID,
		StoreID:               st.ID,
		SubscriptionStatus:    domain.SubscriptionTrial,
		SubscriptionExpiresAt: &trialEnds,
	}); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *AuthService) register(in RegisterInput, role domain.Role) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.Store.CreateUser(storage.CreateUserParams{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if errors.Is(err, storage.ErrConflict) {
		return domain.User{}, ErrTaken
	}
	return u, err
}

// Login verifies credentials and returns the user plus a fresh session id.
func (s *AuthService) Login(username, password string) (domain.User, string, error) {
	u, err := s.Store.UserByUsername(username)
	if err != nil {
		return domain.User{}, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", ErrBadCreds
	}
	sid := uuid.NewString()
	s.mu.Lock()
	s.sessions[sid] = session{userID: u.ID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return u, sid, nil
}

func (s *AuthService) Logout(sid string) {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
}

// CurrentUser resolves a session cookie to its user.
func (s *AuthService) CurrentUser(sid string) (domain.User, error) {
	if sid == "" {
		return domain.User{}, ErrNoSession
	}
	s.mu.RLock()
	sess, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok {
		return domain.User{}, ErrBadSession
	}
	if time.Now().After(sess.expiresAt) {
		s.Logout(sid)
		return domain.User{}, ErrBadSession
	}
	u, err := s.Store.User(sess.userID)
	if err != nil {
		return domain.User{}, ErrBadSession
	}
	return u, nil
}
