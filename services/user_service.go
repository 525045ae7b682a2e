package services

import (
	"context"
	"fmt"
	"time"

	"github.com/natblog/blogapi/models"
	"github.com/natblog/blogapi/repository"
	"github.com/natblog/blogapi/utils"
)

const userCacheTTL = 10 * time.Minute

// UserUpdate carries optional profile changes. Nil fields are left untouched.
type UserUpdate struct {
	Email    *string
	Username *string
	Password *string
	Name     *string
	Bio      *string
}

// UserService manages accounts on behalf of an authenticated caller.
type UserService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	cache  Cache
}

// NewUserService wires a UserService. A *utils.Cache without a client disables caching.
func NewUserService(users repository.UserRepository, hasher PasswordHasher, cache Cache) *UserService {
	return &UserService{users: users, hasher: hasher, cache: cache}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func userNotFound(id uint) error {
	return NotFound(fmt.Sprintf("User with id %d not found", id))
}

// Create is the admin only account creation path.
func (s *UserService) Create(ctx context.Context, caller Caller, in RegisterInput) (*models.User, error) {
	if !Decide(ActionCreateUser, 0, caller) {
		return nil, Forbidden("Only admin can create new users with this route")
	}
	return createUser(ctx, s.users, s.hasher, in)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, FromStore(err, msgDuplicateUser)
	}
	return users, nil
}

// Get returns a user by id, served from cache when possible.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var cached models.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, FromStore(err, msgDuplicateUser)
	}
	if user == nil {
		return nil, userNotFound(id)
	}
	s.cache.SetJSON(ctx, userCacheKey(id), user, userCacheTTL)
	return user, nil
}

// Update changes the profile of user id. Only the user themself or an admin may do so.
func (s *UserService) Update(ctx context.Context, caller Caller, id uint, in UserUpdate) (*models.User, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, FromStore(err, msgDuplicateUser)
	}
	if target == nil {
		return nil, userNotFound(id)
	}
	if !Decide(ActionUpdateProfile, target.ID, caller) {
		return nil, Forbidden("You can only update your own profile")
	}

	updates := map[string]interface{}{}
	var email, username string
	if in.Email != nil {
		email = *in.Email
		updates["email"] = email
	}
	if in.Username != nil {
		username = *in.Username
		updates["username"] = username
	}
	if email != "" || username != "" {
		other, err := s.users.FindConflicting(ctx, email, username, id)
		if err != nil {
			return nil, FromStore(err, msgDuplicateUser)
		}
		if other != nil {
			return nil, Conflict(msgDuplicateUser)
		}
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, BadRequest(err.Error())
		}
		updates["password"] = hash
	}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		return nil, FromStore(err, msgDuplicateUser)
	}
	s.cache.Delete(ctx, userCacheKey(id))
	// cached blog snapshots embed the author profile
	s.cache.InvalidateByPrefix(ctx, blogCachePrefix)
	return user, nil
}

// Remove deletes user id together with everything it owns.
func (s *UserService) Remove(ctx context.Context, caller Caller, id uint) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return FromStore(err, msgDuplicateUser)
	}
	if target == nil {
		return userNotFound(id)
	}
	if !Decide(ActionDeleteProfile, target.ID, caller) {
		return Forbidden("You can only delete your own profile")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return FromStore(err, msgDuplicateUser)
	}
	s.cache.Delete(ctx, userCacheKey(id))
	// the user's blogs, likes, comments and ratings are gone with it
	s.cache.InvalidateByPrefix(ctx, blogCachePrefix)
	utils.Sugar.Infow("user deleted", "userId", id, "by", caller.ID)
	return nil
}
