package schemas

/** 				**/
/** Request Objects **/
/** 				**/

// RegistrationRequest is a struct that represents a registration request
// Email is required and must be a valid email
// The password policy itself is enforced by the auth engine so its specific
// error codes reach the client.
type RegistrationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is a struct that represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifySessionRequest carries a session token for verification.
type VerifySessionRequest struct {
	SessionToken string `json:"sessionToken" validate:"required"`
}

// VerifyEmailRequest carries the verification token from the emailed link.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// PasswordResetRequest asks for a reset mail to be sent.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResendVerificationRequest asks for the verification mail to be re-sent.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consumes a persisted reset token and sets a new
// password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePasswordRequest changes the password of the authenticated user.
// OldPassword is checked before the new one is written.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// UpdateProfileRequest updates the personalization profile. Values are
// checked against the known option lists by the profile store.
type UpdateProfileRequest struct {
	Phase string   `json:"phase" validate:"max=32"`
	Goal  string   `json:"goal" validate:"max=64"`
	Diet  []string `json:"diet" validate:"max=8,dive,max=32"`
}

// AppendChatRequest appends a question/answer pair to the chat history.
type AppendChatRequest struct {
	Question string `json:"question" validate:"required,max=2048"`
	Answer   string `json:"answer" validate:"required,max=8192"`
}
