package schemas

// CustomError is the wire representation of an error. Code is stable and
// machine-readable, Message is safe to show to the user. Messages for
// credential failures are deliberately generic so account existence cannot
// be probed.
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	BadRequest = &CustomError{
		Code:    "ERR-000",
		Message: "The request body is invalid. Please check the request body and try again.",
	}
	InvalidEmail = &CustomError{
		Code:    "ERR-001",
		Message: "Please enter a valid email address",
	}
	PasswordTooShort = &CustomError{
		Code:    "ERR-002",
		Message: "Password must be at least 8 characters long",
	}
	PasswordMissingUppercase = &CustomError{
		Code:    "ERR-003",
		Message: "Password must contain at least one uppercase letter",
	}
	PasswordMissingLowercase = &CustomError{
		Code:    "ERR-004",
		Message: "Password must contain at least one lowercase letter",
	}
	PasswordMissingDigit = &CustomError{
		Code:    "ERR-005",
		Message: "Password must contain at least one number",
	}
	UserExists = &CustomError{
		Code:    "ERR-006",
		Message: "An account with this email already exists",
	}
	InvalidCredentials = &CustomError{
		Code:    "ERR-007",
		Message: "Invalid email or password",
	}
	EmailVerificationRequired = &CustomError{
		Code:    "ERR-008",
		Message: "Please verify your email address before logging in",
	}
	SessionExpired = &CustomError{
		Code:    "ERR-009",
		Message: "Your session has expired. Please log in again",
	}
	InvalidToken = &CustomError{
		Code:    "ERR-010",
		Message: "The token is invalid or has expired",
	}
	EmailNotSent = &CustomError{
		Code:    "ERR-011",
		Message: "We could not send the email. Please try again later",
	}
	Unauthorized = &CustomError{
		Code:    "ERR-012",
		Message: "You are not authorized to perform this action",
	}
	ProfileNotFound = &CustomError{
		Code:    "ERR-013",
		Message: "Profile not found",
	}
	InvalidProfileValue = &CustomError{
		Code:    "ERR-014",
		Message: "One of the submitted profile values is not a valid option",
	}
	InternalServerError = &CustomError{
		Code:    "ERR-500",
		Message: "An error occurred. Please try again later",
	}
	DatabaseError = &CustomError{
		Code:    "ERR-501",
		Message: "An error occurred. Please try again later",
	}
)
