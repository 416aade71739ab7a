package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/mail"
	"github.com/rllagas/csm-server/middleware"
	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/rbac"
	"github.com/rllagas/csm-server/utils"
)

// Admin account management. The routes are gated by CapEditRoles, so only
// a superadmin gets here; self-targeting is still rejected per request.

// GetOverview is the dashboard landing payload: the caller's own standing
// plus the counters the navigation shows. Reachable by any authenticated
// account, including pending admins, so the counters are capability-gated.
func GetOverview(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	out := gin.H{
		"user":         userJSON(u),
		"state":        rbac.AccountStateOf(u.IsAdmin, u.EmailVerified),
		"capabilities": rbac.Capabilities(u.Role),
	}
	if rbac.CanViewNotifications(u.Role) {
		var unread int64
		config.DB.Model(&models.Notification{}).Where("read = ?", false).Count(&unread)
		out["unread_notifications"] = unread
	}
	if rbac.CanEditRoles(u.Role) {
		var pending int64
		config.DB.Model(&models.User{}).Where("is_admin = ? AND role <> ''", false).Count(&pending)
		out["pending_accounts"] = pending
	}
	c.JSON(http.StatusOK, out)
}

func ListAdmins(c *gin.Context) {
	var admins []models.User
	if err := config.DB.Where("is_admin = ? OR role <> ''", true).
		Order("created_at ASC").Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load accounts"})
		return
	}

	items := make([]gin.H, 0, len(admins))
	for _, a := range admins {
		item := userJSON(a)
		item["state"] = rbac.AccountStateOf(a.IsAdmin, a.EmailVerified)
		items = append(items, item)
	}
	c.JSON(http.StatusOK, gin.H{"accounts": items})
}

func ListPendingAdmins(c *gin.Context) {
	var pending []models.User
	if err := config.DB.Where("is_admin = ? AND role <> ''", false).
		Order("created_at ASC").Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load accounts"})
		return
	}

	items := make([]gin.H, 0, len(pending))
	for _, a := range pending {
		items = append(items, userJSON(a))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": items})
}

func loadTarget(c *gin.Context) (models.User, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return models.User{}, false
	}
	var target models.User
	if err := config.DB.First(&target, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			return models.User{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read account"})
		return models.User{}, false
	}
	return target, true
}

// ApproveAdmin activates a pending account: pending -> active.
func ApproveAdmin(c *gin.Context) {
	requester, _ := middleware.CurrentUser(c)
	target, ok := loadTarget(c)
	if !ok {
		return
	}

	if !rbac.CanApproveAccount(requester.Role, requester.ID, target.ID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You may not approve this account"})
		return
	}
	if rbac.AccountStateOf(target.IsAdmin, target.EmailVerified) == rbac.StateActive {
		c.JSON(http.StatusConflict, gin.H{"message": "Account is already active"})
		return
	}

	if err := config.DB.Model(&target).Updates(map[string]interface{}{
		"is_admin":       true,
		"email_verified": true,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not approve account"})
		return
	}

	logActivity(&requester.ID, "admin.approve", target.Email)
	if err := Mailer.Send(mail.AccountApproved(target.Email, target.Name)); err != nil {
		log.Error().Err(err).Str("email", target.Email).Msg("could not deliver approval notice")
	}

	c.JSON(http.StatusOK, gin.H{"message": "approved"})
}

// RejectAdmin deletes a pending account outright; there is no rejected
// state to keep.
func RejectAdmin(c *gin.Context) {
	requester, _ := middleware.CurrentUser(c)
	target, ok := loadTarget(c)
	if !ok {
		return
	}

	if !rbac.CanApproveAccount(requester.Role, requester.ID, target.ID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You may not reject this account"})
		return
	}
	if rbac.AccountStateOf(target.IsAdmin, target.EmailVerified) == rbac.StateActive {
		c.JSON(http.StatusConflict, gin.H{"message": "Account is already active"})
		return
	}

	if err := config.DB.Delete(&target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not reject account"})
		return
	}

	logActivity(&requester.ID, "admin.reject", target.Email)
	c.JSON(http.StatusOK, gin.H{"message": "rejected"})
}

type updateRoleReq struct {
	Role string `json:"role" binding:"required"`
}

func UpdateAdminRole(c *gin.Context) {
	requester, _ := middleware.CurrentUser(c)
	target, ok := loadTarget(c)
	if !ok {
		return
	}

	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}
	if !rbac.Known(req.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Unknown role"})
		return
	}
	if !rbac.CanAssignRole(requester.Role, requester.ID, target.ID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You may not change this account's role"})
		return
	}

	role := string(rbac.Normalize(req.Role))
	if err := config.DB.Model(&target).Update("role", role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update role"})
		return
	}

	logActivity(&requester.ID, "admin.role", fmt.Sprintf("%s -> %s", target.Email, role))
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

type createAdminReq struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// CreateAdmin is the superadmin path: the account lands active directly.
func CreateAdmin(c *gin.Context) {
	requester, _ := middleware.CurrentUser(c)

	var req createAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}
	if !rbac.Known(req.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Unknown role"})
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not hash password"})
		return
	}

	active := rbac.InitialState(requester.Role) == rbac.StateActive
	u := models.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		Role:          string(rbac.Normalize(req.Role)),
		IsAdmin:       active,
		EmailVerified: active,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create account"})
		return
	}

	logActivity(&requester.ID, "admin.create", u.Email)
	c.JSON(http.StatusCreated, gin.H{"user": userJSON(u)})
}
