package gamedata

// AbilityDef holds the tunable numbers of one ability.
type AbilityDef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cooldown    float64 `json:"cooldown"` // ticks
	Power       float64 `json:"power"`    // damage or heal scale
	Range       float64 `json:"range"`    // reach, radius or travel distance
	Duration    float64 `json:"duration"` // ticks, for effects the ability grants
	Speed       float64 `json:"speed"`    // travel speed for movement abilities
	Draftable   bool    `json:"draftable"`
}

// TalentDef holds the card text of one talent. Talent numbers live with
// the talent code because they shape its behaviour, not its balance.
type TalentDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CardsFile represents the structure of cards.json.
type CardsFile struct {
	Abilities []AbilityDef `json:"abilities"`
	Talents   []TalentDef  `json:"talents"`
}

// LoadCards loads ability and talent definitions from cards.json.
func LoadCards() (CardsFile, error) {
	return Load[CardsFile]("cards.json")
}
