package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cycle-nutrition/server/internal/schemas"
	"github.com/cycle-nutrition/server/internal/store"
	"github.com/cycle-nutrition/server/internal/utils"
)

type ProfileHdl interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	GetChatHistory(c *gin.Context)
	AppendChat(c *gin.Context)
	ClearChatHistory(c *gin.Context)
	ExportData(c *gin.Context)
	DeleteAccount(c *gin.Context)
}

type ProfileHandler struct {
	ProfileStore    store.ProfileStore
	CredentialStore store.CredentialStore
}

func NewProfileHandler(profileStore store.ProfileStore, credentialStore store.CredentialStore) ProfileHdl {
	return &ProfileHandler{
		ProfileStore:    profileStore,
		CredentialStore: credentialStore,
	}
}

func profileToDTO(profile *schemas.Profile) *schemas.ProfileDTO {
	return &schemas.ProfileDTO{
		Phase:     profile.Phase,
		Goal:      profile.Goal,
		Diet:      profile.Diet,
		UpdatedAt: profile.UpdatedAt.Format(time.RFC3339),
	}
}

func chatToDTOs(messages []schemas.ChatMessage) []schemas.ChatMessageDTO {
	dtos := make([]schemas.ChatMessageDTO, 0, len(messages))
	for _, message := range messages {
		dtos = append(dtos, schemas.ChatMessageDTO{
			Role:      message.Role,
			Content:   message.Content,
			Timestamp: message.Timestamp.Format(time.RFC3339),
		})
	}
	return dtos
}

func (handler *ProfileHandler) GetProfile(c *gin.Context) {
	userId := c.GetString(utils.UserIdKey.String())

	profile, err := handler.ProfileStore.GetProfile(c, userId)
	if errors.Is(err, store.ErrProfileNotFound) {
		utils.WriteAndLogError(c, schemas.ProfileNotFound, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, profileToDTO(profile), http.StatusOK)
}

func (handler *ProfileHandler) UpdateProfile(c *gin.Context) {
	userId := c.GetString(utils.UserIdKey.String())
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.UpdateProfileRequest)

	profile := &schemas.Profile{
		Phase: request.Phase,
		Goal:  request.Goal,
		Diet:  request.Diet,
	}
	if err := handler.ProfileStore.UpdateProfile(c, userId, profile); err != nil {
		if errors.Is(err, store.ErrInvalidProfileValue) {
			utils.WriteAndLogError(c, schemas.InvalidProfileValue, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Profile updated"}, http.StatusOK)
}

func (handler *ProfileHandler) GetChatHistory(c *gin.Context) {
	userId := c.GetString(utils.UserIdKey.String())

	messages, err := handler.ProfileStore.GetChatHistory(c, userId, 0)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, chatToDTOs(messages), http.StatusOK)
}

// AppendChat stores one question/answer exchange as two history rows so the
// stored transcript replays in order.
func (handler *ProfileHandler) AppendChat(c *gin.Context) {
	userId := c.GetString(utils.UserIdKey.String())
	request := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.AppendChatRequest)

	parsedId, err := uuid.Parse(userId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	entries := []*schemas.ChatMessage{
		{UserID: parsedId, Role: "user", Content: request.Question, Timestamp: now},
		{UserID: parsedId, Role: "assistant", Content: request.Answer, Timestamp: now},
	}
	for _, entry := range entries {
		if err := handler.ProfileStore.AppendChatMessage(c, entry); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Chat history updated"}, http.StatusCreated)
}

func (handler *ProfileHandler) ClearChatHistory(c *gin.Context) {
	userId := c.GetString(utils.UserIdKey.String())

	if err := handler.ProfileStore.ClearChatHistory(c, userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Chat history cleared"}, http.StatusOK)
}

// ExportData bundles everything stored about the user. A missing profile is
// not an error here; the export just carries an empty profile section.
func (handler *ProfileHandler) ExportData(c *gin.Context) {
	userId := c.GetString(utils.UserIdKey.String())

	user, err := handler.CredentialStore.FindUserByID(c, userId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	export := &schemas.ExportDTO{
		ExportDate: time.Now().Format(time.RFC3339),
		UserInfo: schemas.UserInfoDTO{
			Email:     user.Email,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
	}
	if user.LastLogin != nil {
		lastLogin := user.LastLogin.Format(time.RFC3339)
		export.UserInfo.LastLogin = &lastLogin
	}

	profile, err := handler.ProfileStore.GetProfile(c, userId)
	switch {
	case err == nil:
		export.Profile = *profileToDTO(profile)
	case !errors.Is(err, store.ErrProfileNotFound):
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	messages, err := handler.ProfileStore.GetChatHistory(c, userId, 0)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	export.ChatHistory = chatToDTOs(messages)

	utils.WriteAndLogResponse(c, export, http.StatusOK)
}

func (handler *ProfileHandler) DeleteAccount(c *gin.Context) {
	userId := c.GetString(utils.UserIdKey.String())

	if err := handler.ProfileStore.DeleteAccount(c, userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Account deleted"}, http.StatusOK)
}
