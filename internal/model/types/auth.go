package types

// OtpRequestRequest asks for a one-time sign-in code to be mailed.
type OtpRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OtpRequestResponse deliberately reveals nothing about account existence
// or throttling: it is always {ok: true} on well-formed input.
type OtpRequestResponse struct {
	OK bool `json:"ok"`
}

// OtpVerifyRequest exchanges a mailed code for a session token.
type OtpVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// OtpVerifyResponse carries the issued opaque bearer token.
type OtpVerifyResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
