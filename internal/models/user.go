package models

// UserProfile answers GET /user/profile.
type UserProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EditProfileRequest is the collaborator payload for POST /user/profile/edit.
type EditProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
