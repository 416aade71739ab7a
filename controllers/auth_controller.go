package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/mail"
	"github.com/rllagas/csm-server/middleware"
	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/rbac"
	"github.com/rllagas/csm-server/utils"
)

const (
	codeTTL        = 10 * time.Minute
	resendCooldown = time.Minute
)

type registerReq struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	// Admin requests an admin account; it stays pending until a
	// superadmin approves it.
	Admin bool   `json:"admin"`
	Role  string `json:"role"`
}

func Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	// An admin signup must name the role it is requesting, or it would
	// never show up in the pending queue.
	if req.Admin && !rbac.Known(req.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "A valid role is required for admin accounts"})
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

	u := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if req.Admin {
		// Self-service signup never lands active.
		u.Role = string(rbac.Normalize(req.Role))
	}

	if err := config.DB.Create(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create account"})
		return
	}

	if req.Admin {
		notify("account", fmt.Sprintf("New admin signup awaiting approval: %s <%s>", u.Name, u.Email))
	}
	sendCode(u.Email)

	c.JSON(http.StatusCreated, gin.H{"user": userJSON(u)})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var u models.User
	if err := config.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(strconv.FormatUint(uint64(u.ID), 10), u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(u)})
}

type googleLoginReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GoogleLogin verifies a Google ID token and signs the user in, creating
// the account on first sight. Google-created accounts are respondents;
// admin access still goes through the approval flow.
func GoogleLogin(c *gin.Context) {
	var req googleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Google token"})
		return
	}

	sub, _ := payload.Claims["sub"].(string)
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if sub == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token missing identity claims"})
		return
	}

	var u models.User
	err = config.DB.Where("google_sub = ? OR email = ?", sub, email).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = models.User{Name: name, Email: email, GoogleSub: &sub, EmailVerified: true}
		if err := config.DB.Create(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create account"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not look up account"})
		return
	default:
		if u.GoogleSub == nil {
			config.DB.Model(&u).Update("google_sub", sub)
		}
	}

	token, err := utils.GenerateToken(strconv.FormatUint(uint64(u.ID), 10), u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(u)})
}

func Me(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"user":         userJSON(u),
		"capabilities": rbac.Capabilities(u.Role),
		"state":        rbac.AccountStateOf(u.IsAdmin, u.EmailVerified),
	})
}

type sendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

// SendVerificationCode issues (or re-issues) an email verification code.
// Resends are throttled per email: the in-process limiter closes the race
// between near-simultaneous requests, the LastSentAt column enforces the
// cooldown across restarts.
func SendVerificationCode(c *gin.Context) {
	var req sendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var u models.User
	if err := config.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		// Do not reveal whether the address exists.
		c.JSON(http.StatusOK, gin.H{"message": "If the address is registered, a code has been sent"})
		return
	}
	if u.EmailVerified {
		c.JSON(http.StatusOK, gin.H{"message": "Email is already verified"})
		return
	}

	if !middleware.ResendLimiter.Allow(req.Email) {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Please wait before requesting another code"})
		return
	}
	var existing models.VerificationCode
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		if time.Since(existing.LastSentAt) < resendCooldown {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Please wait before requesting another code"})
			return
		}
	}

	if err := sendCode(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not send code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the address is registered, a code has been sent"})
}

func sendCode(email string) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}
	hash, err := utils.HashVerificationCode(code)
	if err != nil {
		return err
	}

	now := time.Now()
	row := models.VerificationCode{
		Email:      email,
		CodeHash:   hash,
		ExpiresAt:  now.Add(codeTTL),
		LastSentAt: now,
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.VerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return err
	}

	if err := Mailer.Send(mail.VerificationCode(email, code)); err != nil {
		log.Error().Err(err).Str("email", email).Msg("could not deliver verification code")
		return err
	}
	return nil
}

type verifyEmailReq struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

func VerifyEmail(c *gin.Context) {
	var req verifyEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var row models.VerificationCode
	if err := config.DB.Where("email = ?", req.Email).First(&row).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired code"})
		return
	}
	if time.Now().After(row.ExpiresAt) || !utils.CheckVerificationCode(row.CodeHash, req.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired code"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("email = ?", req.Email).
			Update("email_verified", true).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not verify email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

func userJSON(u models.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"role":           u.Role,
		"is_admin":       u.IsAdmin,
		"email_verified": u.EmailVerified,
		"created_at":     u.CreatedAt,
	}
}
