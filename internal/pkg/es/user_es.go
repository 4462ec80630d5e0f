package es

// UserES is the document shape of the user search index. It exists so
// people can find chat partners by name.
type UserES struct {
	ID          uint64  `json:"id"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   string  `json:"avatar_url"`
}
