package model

// Identity 鉴权通过后挂在请求上的调用方信息
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
