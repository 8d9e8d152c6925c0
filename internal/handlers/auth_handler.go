// Package handlers contains the gin handlers. They stay thin: payloads come
// pre-validated from the middleware, the domain work happens in the engine
// and the stores, and the handlers only translate outcomes into HTTP.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cycle-nutrition/server/internal/auth"
	"github.com/cycle-nutrition/server/internal/schemas"
	"github.com/cycle-nutrition/server/internal/utils"
)

type AuthHdl interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	VerifySession(c *gin.Context)
	VerifyEmail(c *gin.Context)
	ResendVerification(c *gin.Context)
	RequestPasswordReset(c *gin.Context)
	VerifyResetToken(c *gin.Context)
	ResetPassword(c *gin.Context)
	ChangePassword(c *gin.Context)
}

type AuthHandler struct {
	Engine *auth.Engine
}

func NewAuthHandler(engine *auth.Engine) AuthHdl {
	return &AuthHandler{Engine: engine}
}

// writeEngineError maps the failure kind onto an HTTP status. The engine
// never sees HTTP, so the mapping lives entirely here.
func writeEngineError(c *gin.Context, authErr *auth.Error) {
	status := http.StatusInternalServerError

	switch authErr.Kind {
	case auth.KindValidation:
		status = http.StatusBadRequest
	case auth.KindConflict:
		status = http.StatusConflict
	case auth.KindAuthentication:
		status = http.StatusUnauthorized
		if authErr.Public == schemas.EmailVerificationRequired {
			status = http.StatusForbidden
		}
	case auth.KindToken:
		status = http.StatusUnauthorized
	}

	utils.WriteAndLogError(c, authErr.Public, status, authErr)
}

func (handler *AuthHandler) Register(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.RegistrationRequest)

	message, authErr := handler.Engine.Register(c, request.Email, request.Password)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, message, http.StatusCreated)
}

func (handler *AuthHandler) Login(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)

	session, authErr := handler.Engine.Login(c, request.Email, request.Password)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, session, http.StatusOK)
}

func (handler *AuthHandler) VerifySession(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.VerifySessionRequest)

	userId, authErr := handler.Engine.VerifySession(request.SessionToken)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.SubjectDTO{UserId: userId}, http.StatusOK)
}

func (handler *AuthHandler) VerifyEmail(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.VerifyEmailRequest)

	message, authErr := handler.Engine.VerifyEmail(c, request.Token)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, message, http.StatusOK)
}

func (handler *AuthHandler) ResendVerification(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.ResendVerificationRequest)

	message, authErr := handler.Engine.ResendVerification(c, request.Email)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, message, http.StatusOK)
}

func (handler *AuthHandler) RequestPasswordReset(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.PasswordResetRequest)

	message, authErr := handler.Engine.SendPasswordReset(c, request.Email)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, message, http.StatusOK)
}

func (handler *AuthHandler) VerifyResetToken(c *gin.Context) {
	token := c.Param("token")

	email, authErr := handler.Engine.VerifyResetToken(c, token)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.ResetTokenDTO{Email: email, Valid: true}, http.StatusOK)
}

func (handler *AuthHandler) ResetPassword(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.ResetPasswordRequest)

	message, authErr := handler.Engine.ResetPassword(c, request.Token, request.NewPassword)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, message, http.StatusOK)
}

func (handler *AuthHandler) ChangePassword(c *gin.Context) {
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.ChangePasswordRequest)
	userId := c.GetString(utils.UserIdKey.String())

	message, authErr := handler.Engine.ChangePassword(c, userId, request.OldPassword, request.NewPassword)
	if authErr != nil {
		writeEngineError(c, authErr)
		return
	}

	utils.WriteAndLogResponse(c, message, http.StatusOK)
}
