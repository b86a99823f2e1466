package model

import (
	"time"

	"github.com/festy23/nations_league/internal/squad"
)

// Team is a registered national team with its generated squad.
type Team struct {
	ID               string    `gorm:"primaryKey;column:id;type:varchar(36)"           json:"id"`
	Country          string    `gorm:"column:country;type:varchar(255);not null;uniqueIndex" json:"country"`
	Manager          string    `gorm:"column:manager;type:varchar(255);not null"        json:"manager"`
	RepresentativeID *string   `gorm:"column:representative_id;type:varchar(36);uniqueIndex" json:"representative_id,omitempty"`
	AverageRating    int       `gorm:"column:average_rating;not null"                   json:"average_rating"`
	Squad            []Player  `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"   json:"squad,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at;not null"                       json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null"                       json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// Player is a squad member. Ratings never change after registration.
type Player struct {
	ID              string         `gorm:"primaryKey;column:id;type:varchar(36)"                                      json:"id"`
	TeamID          string         `gorm:"column:team_id;type:varchar(36);not null;uniqueIndex:idx_players_team_order,priority:1" json:"-"`
	SquadOrder      int            `gorm:"column:squad_order;not null;uniqueIndex:idx_players_team_order,priority:2"  json:"-"`
	Name            string         `gorm:"column:name;type:varchar(255);not null"                                     json:"name"`
	NaturalPosition squad.Position `gorm:"column:natural_position;type:varchar(2);not null"                           json:"natural_position"`
	Ratings         squad.Ratings  `gorm:"embedded;embeddedPrefix:rating_"                                            json:"ratings"`
	IsCaptain       bool           `gorm:"column:is_captain;not null;default:false"                                   json:"is_captain"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}

// ToSquad converts persisted players back to generated squad members.
func ToSquad(players []Player) []squad.Player {
	out := make([]squad.Player, len(players))
	for i, p := range players {
		out[i] = squad.Player{
			Name:            p.Name,
			NaturalPosition: p.NaturalPosition,
			Ratings:         p.Ratings,
			IsCaptain:       p.IsCaptain,
		}
	}
	return out
}

// DemoTeam is a team created by the demo seed.
type DemoTeam struct {
	Country string
	Manager string
}

// DemoTeams are seeded so a tournament can start once one more team registers.
var DemoTeams = []DemoTeam{
	{Country: "Nigeria", Manager: "José Peseiro"},
	{Country: "Egypt", Manager: "Rui Vitória"},
	{Country: "Senegal", Manager: "Aliou Cissé"},
	{Country: "Morocco", Manager: "Walid Regragui"},
	{Country: "Ghana", Manager: "Chris Hughton"},
	{Country: "Ivory Coast", Manager: "Jean-Louis Gasset"},
	{Country: "Cameroon", Manager: "Rigobert Song"},
}
