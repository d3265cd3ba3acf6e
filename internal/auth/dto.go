package auth

import "strings"

type CredentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (dto CredentialsDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" || strings.TrimSpace(dto.Password) == "" {
		return ErrMissingCredentials
	}
	return nil
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
