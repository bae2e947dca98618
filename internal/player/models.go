package player

import (
	"time"
)

type PlayerRole string

const (
	PlayerRoleUser  PlayerRole = "user"
	PlayerRoleAdmin PlayerRole = "admin"
)

// Player is an account. CountryID points at the nation the player
// governs; it is nil until a country has been assigned.
type Player struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	AvatarURL   *string    `json:"avatar_url"`
	Role        PlayerRole `json:"role"`
	CountryID   *int       `json:"country_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r PlayerRole) String() string {
	return string(r)
}

func (r PlayerRole) IsValid() bool {
	return r == PlayerRoleUser || r == PlayerRoleAdmin
}

func ParsePlayerRole(s string) PlayerRole {
	switch s {
	case "admin":
		return PlayerRoleAdmin
	case "user":
		return PlayerRoleUser
	default:
		return PlayerRoleUser
	}
}

// Governs reports whether the player is assigned the given country.
func (p *Player) Governs(countryID int) bool {
	return p.CountryID != nil && *p.CountryID == countryID
}
