package service

import (
	"crypto/subtle"

	"rag-backend/internal/dto"
	"rag-backend/internal/model"
)

type AuthService interface {
	// Token 演示用的共享 token，直接下发
	Token() dto.TokenResp
	// Verify token 匹配时返回挂到请求上的身份
	Verify(token string) (model.Identity, error)
}

type authService struct {
	token    string
	identity model.Identity
}

func NewAuthService(token string, identity model.Identity) AuthService {
	return &authService{token: token, identity: identity}
}

func (s *authService) Token() dto.TokenResp {
	return dto.TokenResp{Token: s.token}
}

func (s *authService) Verify(token string) (model.Identity, error) {
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return model.Identity{}, &Error{Kind: ErrUnauthorized, Msg: "Unauthorized"}
	}
	return s.identity, nil
}
