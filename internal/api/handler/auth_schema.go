package handler

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// tokenPayload is the data shape returned by every login and signup.
type tokenPayload struct {
	Token   string `json:"token"`
	Profile any    `json:"profile"`
}
