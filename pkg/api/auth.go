package api

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Profile *Profile `json:"profile"`
	Token   string   `json:"token"`
	Access  *Access  `json:"access"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Profile *Profile `json:"profile"`
	Token   string   `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	Profile *Profile `json:"profile"`
	Access  *Access  `json:"access"`
}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	DisplayName     *string `json:"displayName,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	MessagingChatID *string `json:"messagingChatId,omitempty"`
}

type UpdateProfileResponse struct {
	Profile *Profile `json:"profile"`
}
