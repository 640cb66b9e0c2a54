package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

const (
	minPasswordLength    = 6
	merchantIDBase       = 1000
	invalidCredentialMsg = "用户名或密码错误"
)

// AuthService matches credentials and registers merchant accounts. It
// issues no tokens; the caller keeps the returned account client-side.
type AuthService struct {
	Store *store.Store

	persister
}

func NewAuthService(s *store.Store, autosave bool) *AuthService {
	return &AuthService{
		Store:     s,
		persister: newPersister(s, autosave, "auth"),
	}
}

// Login fails with the same error whether the username is unknown or the
// password is wrong.
func (s *AuthService) Login(username, password string) (models.AccountSummary, error) {
	if username == "" || password == "" {
		return models.AccountSummary{}, NewValidationError("请提供用户名和密码")
	}

	var (
		user  models.User
		found bool
	)
	s.Store.Read(func(d *store.Data) {
		for _, u := range d.Users {
			if u.Username == username {
				user, found = u, true
				return
			}
		}
	})
	if !found || !passwordMatches(user.Password, password) {
		s.log.WithField("username", username).Info("login rejected")
		return models.AccountSummary{}, NewUnauthorizedError(invalidCredentialMsg)
	}
	return user.Summary(), nil
}

// Register creates a merchant account. The merchant id starts at
// 1000 + number of accounts and moves forward past ids already in use.
func (s *AuthService) Register(ctx context.Context, username, password, name string) (models.AccountSummary, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" || password == "" || name == "" {
		return models.AccountSummary{}, NewValidationError("请提供完整的注册信息")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return models.AccountSummary{}, NewValidationError("密码长度至少6位")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.AccountSummary{}, NewValidationError("密码长度不能超过72字节")
		}
		return models.AccountSummary{}, NewInternalError("注册失败", err)
	}

	var user models.User
	err = s.Store.Write(func(d *store.Data) error {
		usedMerchantIDs := map[int]bool{}
		nextID := 1
		for _, u := range d.Users {
			if u.Username == username {
				return NewConflictError("用户名已存在", nil)
			}
			if u.MerchantID != nil {
				usedMerchantIDs[*u.MerchantID] = true
			}
			nextID = max(nextID, u.ID+1)
		}

		merchantID := merchantIDBase + len(d.Users)
		for usedMerchantIDs[merchantID] {
			merchantID++
		}

		user = models.User{
			ID:         nextID,
			Username:   username,
			Password:   string(hash),
			Name:       name,
			Role:       models.RoleMerchant,
			MerchantID: &merchantID,
		}
		d.Users = append(d.Users, user)
		return nil
	})
	if err != nil {
		return models.AccountSummary{}, err
	}

	s.log.WithField("username", username).Info("merchant registered")
	s.persist(ctx)
	return user.Summary(), nil
}

// passwordMatches accepts a bcrypt hash or, for seeded legacy accounts, a
// stored plaintext password.
func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
