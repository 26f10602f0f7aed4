package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/services"
	"github.com/lfarias/sisacad/internal/middleware"
)

// RoleController handles role assignment endpoints
type RoleController struct {
	roleService services.IRoleService
}

// NewRoleController creates a new RoleController
func NewRoleController(roleService services.IRoleService) *RoleController {
	return &RoleController{roleService: roleService}
}

// GrantRole assigns a role to a user
// @Summary Grant a role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GrantRoleRequest true "Role assignment"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Role granted"
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Role already granted"
// @Router /roles [post]
func (c *RoleController) GrantRole(ctx *gin.Context) {
	var req dto.GrantRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.roleService.GrantRole(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Role granted"},
		Timestamp: time.Now(),
	})
}

// RevokeRole removes a role assignment
// @Summary Revoke a role
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param role path string true "Role name" Enums(admin, reader)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Role revoked"
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Role assignment not found"
// @Router /roles/{userId}/{role} [delete]
func (c *RoleController) RevokeRole(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	role := ctx.Param("role")

	if err := c.roleService.RevokeRole(ctx.Request.Context(), userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Role revoked"},
		Timestamp: time.Now(),
	})
}

// ListUserRoles lists the roles assigned to a user
// @Summary List a user's roles
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Role} "Roles retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Router /roles/{userId} [get]
func (c *RoleController) ListUserRoles(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	roles, err := c.roleService.ListUserRoles(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: roles, Timestamp: time.Now()})
}
