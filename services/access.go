package services

import "github.com/natblog/blogapi/models"

// Action names an operation checked by Decide.
type Action string

const (
	ActionReadOwnList   Action = "read-own-list"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionLike          Action = "like"
	ActionComment       Action = "comment"
	ActionRate          Action = "rate"
	ActionEditComment   Action = "edit-comment"
	ActionDeleteComment Action = "delete-comment"
	ActionCreateUser    Action = "create-user"
	ActionUpdateProfile Action = "update-profile"
	ActionDeleteProfile Action = "delete-profile"
)

// Caller is the authenticated identity behind a request. ID zero means unknown.
type Caller struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the caller carries the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Decide applies the access policy. owner is the resource owner, or the target user for
// profile actions, and is ignored for creation type actions. It has no side effects.
func Decide(action Action, owner uint, caller Caller) bool {
	switch action {
	case ActionUpdate, ActionDelete, ActionEditComment, ActionDeleteComment:
		return caller.IsAdmin() || caller.ID == owner
	case ActionCreateUser:
		return caller.IsAdmin()
	case ActionLike, ActionComment, ActionRate:
		// self-action is forbidden, admins included
		return caller.ID != owner
	case ActionUpdateProfile, ActionDeleteProfile:
		return caller.IsAdmin() || caller.ID == owner
	case ActionReadOwnList:
		return caller.ID != 0
	default:
		return false
	}
}

// requireCaller is the identity precondition shared by every mutating operation.
func requireCaller(caller Caller) error {
	if caller.ID == 0 {
		return BadRequest("userId is required")
	}
	return nil
}
