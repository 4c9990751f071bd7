package actions

import (
	"log"
	"strings"

	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

// Users exposes the user profile actions.
type Users struct {
	store       UserStore
	revalidator Revalidator
	auditor     Auditor
}

// NewUsers constructs the user actions over a store. revalidator and
// auditor may be nil.
func NewUsers(store UserStore, revalidator Revalidator, auditor Auditor) *Users {
	if revalidator == nil {
		revalidator = NopRevalidator{}
	}
	return &Users{store: store, revalidator: revalidator, auditor: auditor}
}

// CreateUserProfileInput carries the caller-supplied fields for a new
// profile. ID is the auth account uuid.
type CreateUserProfileInput struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	AvatarURL   string            `json:"avatar_url"`
	Bio         string            `json:"bio"`
	Role        entities.UserRole `json:"role"`
}

// UpdateUserProfileInput carries a partial update; nil fields are left
// untouched.
type UpdateUserProfileInput struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
}

// GetUsers returns every profile.
func (a *Users) GetUsers() Result[[]entities.UserProfile] {
	users, err := a.store.FindAll()
	if err != nil {
		log.Printf("Get users error: %v", err)
		return Err[[]entities.UserProfile]("Failed to fetch users")
	}
	return Ok(users)
}

// GetUserByID returns a single profile; the data is nil when the uuid is
// unknown.
func (a *Users) GetUserByID(id string) Result[*entities.UserProfile] {
	if strings.TrimSpace(id) == "" {
		return Err[*entities.UserProfile]("Invalid user ID")
	}
	user, err := a.store.FindByID(id)
	if err != nil {
		log.Printf("Get user error: %v", err)
		return Err[*entities.UserProfile]("Failed to fetch user")
	}
	return Ok(user)
}

// GetUserByUsername returns a profile by exact username; the data is nil
// when the username is unknown.
func (a *Users) GetUserByUsername(username string) Result[*entities.UserProfile] {
	if strings.TrimSpace(username) == "" {
		return Err[*entities.UserProfile]("Invalid username")
	}
	user, err := a.store.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		log.Printf("Get user by username error: %v", err)
		return Err[*entities.UserProfile]("Failed to fetch user by username")
	}
	return Ok(user)
}

// GetUsersByRole returns active profiles with the given role.
func (a *Users) GetUsersByRole(role entities.UserRole) Result[[]entities.UserProfile] {
	if !entities.ValidUserRole(role) {
		return Err[[]entities.UserProfile]("Invalid user role")
	}
	users, err := a.store.FindByRole(role)
	if err != nil {
		log.Printf("Get users by role error: %v", err)
		return Err[[]entities.UserProfile]("Failed to fetch users by role")
	}
	return Ok(users)
}

// GetActiveUsers returns all active profiles.
func (a *Users) GetActiveUsers() Result[[]entities.UserProfile] {
	users, err := a.store.FindActive()
	if err != nil {
		log.Printf("Get active users error: %v", err)
		return Err[[]entities.UserProfile]("Failed to fetch active users")
	}
	return Ok(users)
}

// SearchUsers matches the query against username or display name.
func (a *Users) SearchUsers(query string) Result[[]entities.UserProfile] {
	if len(strings.TrimSpace(query)) < 2 {
		return Err[[]entities.UserProfile]("Search query must be at least 2 characters long")
	}
	users, err := a.store.Search(strings.TrimSpace(query))
	if err != nil {
		log.Printf("Search users error: %v", err)
		return Err[[]entities.UserProfile]("Failed to search users")
	}
	return Ok(users)
}

// CreateUserProfile validates and stores a new profile. Usernames are
// lowercased before storage and must be unique; the pre-read produces the
// specific message, and the unique index on the column closes the
// remaining race, with constraint violations translated to the same
// message.
func (a *Users) CreateUserProfile(input CreateUserProfileInput) Result[*entities.UserProfile] {
	if strings.TrimSpace(input.ID) == "" {
		return Err[*entities.UserProfile]("User ID is required")
	}
	username := strings.TrimSpace(input.Username)
	if len(username) < 3 {
		return Err[*entities.UserProfile]("Username must be at least 3 characters long")
	}
	if len(username) > 50 {
		return Err[*entities.UserProfile]("Username must be less than 50 characters")
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if len(displayName) > 100 {
		return Err[*entities.UserProfile]("Display name must be less than 100 characters")
	}
	bio := strings.TrimSpace(input.Bio)
	if len(bio) > 500 {
		return Err[*entities.UserProfile]("Bio must be less than 500 characters")
	}
	role := input.Role
	if role == "" {
		role = entities.UserRoleReader
	}
	if !entities.ValidUserRole(role) {
		return Err[*entities.UserProfile]("Invalid user role")
	}

	username = strings.ToLower(username)
	existing, err := a.store.FindByUsername(username)
	if err != nil {
		log.Printf("Create user profile error: %v", err)
		return Err[*entities.UserProfile]("Failed to create user profile")
	}
	if existing != nil {
		return Err[*entities.UserProfile]("Username already exists")
	}

	created, err := a.store.CreateProfile(&entities.UserProfile{
		ID:          strings.TrimSpace(input.ID),
		Username:    username,
		DisplayName: displayName,
		AvatarURL:   input.AvatarURL,
		Bio:         bio,
		Role:        role,
		IsActive:    true,
	})
	a.audit(input.ID, "user_create", created, err)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return Err[*entities.UserProfile]("Username already exists")
		}
		log.Printf("Create user profile error: %v", err)
		return Err[*entities.UserProfile]("Failed to create user profile")
	}

	a.revalidator.Revalidate("/dashboard/users")
	return Ok(created)
}

// UpdateUserProfile validates and applies a partial update.
func (a *Users) UpdateUserProfile(id string, input UpdateUserProfileInput) Result[*entities.UserProfile] {
	if strings.TrimSpace(id) == "" {
		return Err[*entities.UserProfile]("Invalid user ID")
	}

	fields := map[string]any{}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < 3 {
			return Err[*entities.UserProfile]("Username must be at least 3 characters long")
		}
		if len(username) > 50 {
			return Err[*entities.UserProfile]("Username must be less than 50 characters")
		}
		fields["username"] = strings.ToLower(username)
	}
	if input.DisplayName != nil {
		displayName := strings.TrimSpace(*input.DisplayName)
		if len(displayName) > 100 {
			return Err[*entities.UserProfile]("Display name must be less than 100 characters")
		}
		fields["display_name"] = displayName
	}
	if input.AvatarURL != nil {
		fields["avatar_url"] = *input.AvatarURL
	}
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if len(bio) > 500 {
			return Err[*entities.UserProfile]("Bio must be less than 500 characters")
		}
		fields["bio"] = bio
	}
	if len(fields) == 0 {
		return Err[*entities.UserProfile]("No fields to update")
	}

	updated, err := a.store.UpdateProfile(id, fields)
	a.audit(id, "user_update", updated, err)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return Err[*entities.UserProfile]("Username already exists")
		}
		log.Printf("Update user profile error: %v", err)
		return Err[*entities.UserProfile]("Failed to update user profile")
	}

	a.revalidator.Revalidate("/dashboard/users", "/dashboard/users/"+id)
	return Ok(updated)
}

// UpdateUserRole sets a profile's role.
func (a *Users) UpdateUserRole(id string, role entities.UserRole) Result[*entities.UserProfile] {
	if strings.TrimSpace(id) == "" {
		return Err[*entities.UserProfile]("Invalid user ID")
	}
	if !entities.ValidUserRole(role) {
		return Err[*entities.UserProfile]("Invalid user role")
	}

	updated, err := a.store.UpdateRole(id, role)
	a.audit(id, "user_role_update", updated, err)
	if err != nil {
		log.Printf("Update user role error: %v", err)
		return Err[*entities.UserProfile]("Failed to update user role")
	}

	a.revalidator.Revalidate("/dashboard/users", "/dashboard/users/"+id)
	return Ok(updated)
}

// DeactivateUser marks a profile inactive. There is no hard delete path
// for users; deactivating an already inactive profile succeeds.
func (a *Users) DeactivateUser(id string) Result[*entities.UserProfile] {
	if strings.TrimSpace(id) == "" {
		return Err[*entities.UserProfile]("Invalid user ID")
	}

	updated, err := a.store.Deactivate(id)
	a.audit(id, "user_deactivate", updated, err)
	if err != nil {
		log.Printf("Deactivate user error: %v", err)
		return Err[*entities.UserProfile]("Failed to deactivate user")
	}

	a.revalidator.Revalidate("/dashboard/users", "/dashboard/users/"+id)
	return Ok(updated)
}

func (a *Users) audit(actorID, action string, user *entities.UserProfile, err error) {
	if a.auditor == nil {
		return
	}
	entityID := ""
	if user != nil {
		entityID = user.ID
	}
	a.auditor.LogMutation(actorID, action, "user", entityID, err)
}
