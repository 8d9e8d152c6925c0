package schemas

// ErrorDTO is a struct that represents an error response
// Error is the custom error, see CustomError
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

// MessageDTO carries a human-readable confirmation message.
type MessageDTO struct {
	Message string `json:"message"`
}

// SessionDTO is returned by a successful login.
// Id and Email identify the user, SessionToken is the signed session token.
type SessionDTO struct {
	Id           string `json:"id"`
	Email        string `json:"email"`
	SessionToken string `json:"sessionToken"`
}

// SubjectDTO is returned by session verification and carries the user id
// the verified token was issued for.
type SubjectDTO struct {
	UserId string `json:"userId"`
}

// ResetTokenDTO is returned when a reset token is checked before use.
type ResetTokenDTO struct {
	Email string `json:"email"`
	Valid bool   `json:"valid"`
}

// ProfileDTO is the wire representation of a personalization profile.
type ProfileDTO struct {
	Phase     string   `json:"phase"`
	Goal      string   `json:"goal"`
	Diet      []string `json:"diet"`
	UpdatedAt string   `json:"updatedAt"`
}

// ChatMessageDTO is one chat history entry.
type ChatMessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ExportDTO bundles everything stored about a user for data export.
type ExportDTO struct {
	Profile     ProfileDTO       `json:"profile"`
	ChatHistory []ChatMessageDTO `json:"chatHistory"`
	UserInfo    UserInfoDTO      `json:"userInfo"`
	ExportDate  string           `json:"exportDate"`
}

// UserInfoDTO is the account slice of a data export.
type UserInfoDTO struct {
	Email     string  `json:"email"`
	CreatedAt string  `json:"createdAt"`
	LastLogin *string `json:"lastLogin"`
}

// HealthDTO reports the liveness of the server's collaborators. It only ever
// carries booleans, never configuration values.
type HealthDTO struct {
	Database         bool `json:"database"`
	SigningSecretSet bool `json:"signingSecretSet"`
	MailConfigured   bool `json:"mailConfigured"`
}

// MetadataDTO describes the running API.
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}
