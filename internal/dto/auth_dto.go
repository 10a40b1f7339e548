package dto

type TokenResp struct {
	Token string `json:"token"`
}

type PingResp struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
