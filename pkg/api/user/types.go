package user

// LoginData is the credential payload for POST /user/login.
type LoginData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRes is the login result carried in the envelope data.
type LoginRes struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
}

// UserInfoRes describes the signed-in user.
type UserInfoRes struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
}
