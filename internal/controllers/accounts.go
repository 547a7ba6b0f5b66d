package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/middleware"
	"scooter-rental/internal/services"
)

type AccountController struct {
	svc *services.AccountService
	log log.FieldLogger
}

func NewAccountController(svc *services.AccountService, l log.FieldLogger) *AccountController {
	return &AccountController{svc: svc, log: l}
}

type signupPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

func (a *AccountController) SignUp(c *gin.Context) {
	var p signupPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	account, err := a.svc.Signup(c.Request.Context(), services.SignupInput{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Password:  p.Password,
	})
	if err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, account)
}

type verifyPayload struct {
	Email string      `json:"email" binding:"required,email"`
	Code  numericCode `json:"code" binding:"required"`
}

func (a *AccountController) Verify(c *gin.Context) {
	var p verifyPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	account, err := a.svc.VerifyCode(c.Request.Context(), p.Email, int(p.Code))
	if err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, account)
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AccountController) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	token, err := a.svc.Login(c.Request.Context(), p.Email, p.Password)
	if err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, token)
}

type resetRequestPayload struct {
	Email string `json:"email" binding:"required,email"`
}

func (a *AccountController) RequestPasswordReset(c *gin.Context) {
	var p resetRequestPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.svc.RequestPasswordReset(c.Request.Context(), p.Email); err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, "Request sent. Check new verification code.")
}

type resetConfirmPayload struct {
	Email       string      `json:"email" binding:"required,email"`
	Code        numericCode `json:"code" binding:"required"`
	NewPassword string      `json:"newpassword" binding:"required"`
}

func (a *AccountController) ConfirmPasswordReset(c *gin.Context) {
	var p resetConfirmPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.svc.ConfirmPasswordReset(c.Request.Context(), p.Email, int(p.Code), p.NewPassword); err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, "The password was changed")
}

type changePasswordPayload struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newpassword" binding:"required"`
}

// ChangePassword only acts on the caller's own account.
func (a *AccountController) ChangePassword(c *gin.Context) {
	var p changePasswordPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	claims, found := middleware.ClaimsFrom(c)
	if !found || !strings.EqualFold(strings.TrimSpace(p.Email), claims.Email) {
		fail(c, a.log, apperr.ErrUnauthenticated)
		return
	}
	if err := a.svc.ChangePassword(c.Request.Context(), p.Email, p.Password, p.NewPassword); err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, "Password is changed")
}

func (a *AccountController) List(c *gin.Context) {
	accounts, err := a.svc.List(c.Request.Context())
	if err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, accounts)
}

func (a *AccountController) Delete(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	account, err := a.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, account)
}

type updateAccountPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (a *AccountController) Update(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var p updateAccountPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	account, err := a.svc.UpdateProfile(c.Request.Context(), id, p.FirstName, p.LastName)
	if err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, account)
}

func (a *AccountController) Logout(c *gin.Context) {
	claims, found := middleware.ClaimsFrom(c)
	if !found {
		fail(c, a.log, apperr.ErrUnauthenticated)
		return
	}
	if err := a.svc.Logout(c.Request.Context(), claims); err != nil {
		fail(c, a.log, err)
		return
	}
	ok(c, "Logged out")
}
