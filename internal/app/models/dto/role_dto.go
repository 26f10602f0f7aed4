package dto

// GrantRoleRequest grants a role to a user
type GrantRoleRequest struct {
	UserID int64  `json:"userId" binding:"required" example:"3"`
	Role   string `json:"role" binding:"required" example:"reader"`
}
