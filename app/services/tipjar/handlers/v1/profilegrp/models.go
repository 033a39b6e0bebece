package profilegrp

// updateProfile is what a creator puts to save their profile.
type updateProfile struct {
	DisplayName string `json:"displayName" validate:"required"`
	Username    string `json:"username"`
	AvatarURL   string `json:"profilePictureUrl" validate:"omitempty,url"`
}
