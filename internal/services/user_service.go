package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vimukti/vimukti-api/internal/cache"
	"github.com/vimukti/vimukti-api/internal/models"
	mongorepo "github.com/vimukti/vimukti-api/internal/repositories/mongo"
	"github.com/vimukti/vimukti-api/internal/utils"
)

// onboardingFields maps recognized onboarding answer keys to user document
// fields. Anything else in the answers is ignored.
var onboardingFields = map[string]string{
	"name":       "name",
	"age":        "age",
	"zodiacSign": "zodiac_sign",
	"profession": "profession",
	"mbtiType":   "personality_type",
}

type UserService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	// CompleteOnboarding merges recognized answer keys into the profile,
	// records the chosen archetype and marks onboarding done.
	CompleteOnboarding(ctx context.Context, userID string, responses map[string]any, archetype string) error
}

type userService struct {
	users mongorepo.UserRepository
	cache cache.Cache
}

func NewUserService(users mongorepo.UserRepository, c cache.Cache) UserService {
	return &userService{users: users, cache: c}
}

func (s *userService) Get(ctx context.Context, userID string) (*models.User, error) {
	const op = "UserService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return u, nil
}

func (s *userService) CompleteOnboarding(ctx context.Context, userID string, responses map[string]any, archetype string) error {
	const op = "UserService.CompleteOnboarding"

	if userID == "" || archetype == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and personality_archetype are required", nil)
	}

	update := bson.M{
		"personality_archetype": archetype,
		"onboarding_completed":  true,
		"updated_at":            time.Now().UTC(),
	}
	for key, field := range onboardingFields {
		if v, ok := responses[key]; ok {
			if sv := stringValue(v); sv != "" {
				update[field] = sv
			}
		}
	}

	if err := s.users.UpdateFields(ctx, userID, update); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save onboarding data", err)
	}

	s.invalidateAuthCache(ctx, userID)
	return nil
}

// invalidateAuthCache drops the token-keyed cache entry so the next request
// sees the enriched profile.
func (s *userService) invalidateAuthCache(ctx context.Context, userID string) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u.SessionToken == nil {
		return
	}
	_ = s.cache.Del(ctx, authTokenKey(*u.SessionToken))
}

// stringValue normalizes free-form JSON answer values; numeric ages arrive
// as float64 from encoding/json.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}
