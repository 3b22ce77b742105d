package engine

// SurvivorType classifies the survivors a settlement plays with
type SurvivorType string

const (
	SurvivorTypeCore SurvivorType = "Core"
	SurvivorTypeArc  SurvivorType = "Arc"
)

// MonsterType discriminates quarries from nemeses
type MonsterType string

const (
	MonsterTypeQuarry  MonsterType = "quarry"
	MonsterTypeNemesis MonsterType = "nemesis"
)

// Gender of a survivor
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// ActivityStatus tracks whether a hunt or showdown is still being played
type ActivityStatus string

const (
	StatusActive   ActivityStatus = "active"
	StatusResolved ActivityStatus = "resolved"
	StatusEnded    ActivityStatus = "ended"
)

const (
	// Party bounds for hunts and showdowns
	MinPartySize = 1
	MaxPartySize = 4

	MinMonsterLevel = 1
	MaxMonsterLevel = 4
)

// Campaign is the root aggregate; exactly one is persisted
type Campaign struct {
	Settlements          []Settlement `json:"settlements"`
	Survivors            []Survivor   `json:"survivors"`
	Hunts                []Hunt       `json:"hunts"`
	Showdowns            []Showdown   `json:"showdowns"`
	SelectedHuntID       string       `json:"selectedHuntId,omitempty"`
	SelectedShowdownID   string       `json:"selectedShowdownId,omitempty"`
	SelectedSettlementID string       `json:"selectedSettlementId,omitempty"`
	SelectedSurvivorID   string       `json:"selectedSurvivorId,omitempty"`
	SelectedTab          string       `json:"selectedTab,omitempty"`
	DisableToasts        bool         `json:"disableToasts"`
}

// NewCampaign returns an empty campaign with no settlements or survivors
func NewCampaign() *Campaign {
	return &Campaign{
		Settlements: []Settlement{},
		Survivors:   []Survivor{},
		Hunts:       []Hunt{},
		Showdowns:   []Showdown{},
	}
}

// Settlement is a campaign's home base
type Settlement struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	SurvivorType  SurvivorType   `json:"survivorType"`
	UsesScouts    bool           `json:"usesScouts"`
	LanternYear   int            `json:"lanternYear"`
	SurvivalLimit int            `json:"survivalLimit"`
	Population    int            `json:"population"`
	DeathCount    int            `json:"deathCount"`
	Quarries      []Quarry       `json:"quarries"`
	Nemeses       []Nemesis      `json:"nemeses"`
	Milestones    []Milestone    `json:"milestones"`
	Principles    []Principle    `json:"principles"`
	Resources     []Resource     `json:"resources"`
	Timeline      []TimelineYear `json:"timeline"`
	Notes         string         `json:"notes,omitempty"`
}

// Quarry is a monster the settlement can hunt
type Quarry struct {
	Name     string `json:"name"`
	Node     string `json:"node,omitempty"`
	Unlocked bool   `json:"unlocked"`
}

// Nemesis is a monster that comes to the settlement
type Nemesis struct {
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
	Level1   bool   `json:"level1"`
	Level2   bool   `json:"level2"`
	Level3   bool   `json:"level3"`
}

// Milestone is a settlement story trigger
type Milestone struct {
	Name     string `json:"name"`
	Event    string `json:"event,omitempty"`
	Complete bool   `json:"complete"`
}

// Principle is a two-option settlement choice
type Principle struct {
	Name     string `json:"name"`
	Option1  string `json:"option1"`
	Option2  string `json:"option2"`
	Selected int    `json:"selected"` // 0 none, 1 or 2
}

// Resource is a settlement storage entry
type Resource struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Types    []string `json:"types,omitempty"`
	Amount   int      `json:"amount"`
}

// TimelineYear is one lantern year of the settlement timeline
type TimelineYear struct {
	Completed bool     `json:"completed"`
	Entries   []string `json:"entries"`
}

// Survivor is a member of a settlement
type Survivor struct {
	ID               string `json:"id"`
	SettlementID     string `json:"settlementId"`
	Name             string `json:"name"`
	Gender           Gender `json:"gender"`
	HuntXP           int    `json:"huntXP"`
	Survival         int    `json:"survival"`
	Movement         int    `json:"movement"`
	Accuracy         int    `json:"accuracy"`
	Strength         int    `json:"strength"`
	Evasion          int    `json:"evasion"`
	Luck             int    `json:"luck"`
	Speed            int    `json:"speed"`
	Insanity         int    `json:"insanity"`
	Courage          int    `json:"courage"`
	Understanding    int    `json:"understanding"`
	SystemicPressure int    `json:"systemicPressure"`
	Torment          int    `json:"torment"`
	Lumi             int    `json:"lumi"`
	CanSpendSurvival bool   `json:"canSpendSurvival"`
	Dead             bool   `json:"dead"`
	Retired          bool   `json:"retired"`
	Notes            string `json:"notes,omitempty"`
}

// SurvivorTokens are the transient stat modifiers shared by hunt and showdown details.
// Modifiers may be negative.
type SurvivorTokens struct {
	AccuracyTokens int `json:"accuracyTokens"`
	EvasionTokens  int `json:"evasionTokens"`
	LuckTokens     int `json:"luckTokens"`
	MovementTokens int `json:"movementTokens"`
	StrengthTokens int `json:"strengthTokens"`
	SpeedTokens    int `json:"speedTokens"`
}

// HuntSurvivorDetails holds hunt-only state for one survivor
type HuntSurvivorDetails struct {
	SurvivorID string `json:"survivorId"`
	SurvivorTokens
	Notes string `json:"notes,omitempty"`
}

// ShowdownSurvivorDetails holds combat-only state for one survivor
type ShowdownSurvivorDetails struct {
	SurvivorID string `json:"survivorId"`
	SurvivorTokens
	BleedingTokens int    `json:"bleedingTokens"`
	BlockTokens    int    `json:"blockTokens"`
	DeflectTokens  int    `json:"deflectTokens"`
	KnockedDown    bool   `json:"knockedDown"`
	PriorityTarget bool   `json:"priorityTarget"`
	Notes          string `json:"notes,omitempty"`
}

// AIDeck tracks the monster's AI cards by aggregate counts only
type AIDeck struct {
	Basic     int `json:"basic" yaml:"basic"`
	Advanced  int `json:"advanced" yaml:"advanced"`
	Legendary int `json:"legendary" yaml:"legendary"`
	Overtone  int `json:"overtone" yaml:"overtone"`
}

// Total returns the number of cards in the deck
func (d AIDeck) Total() int {
	return d.Basic + d.Advanced + d.Legendary + d.Overtone
}

// MonsterStats is the stat block of one monster instance
type MonsterStats struct {
	Name            string `json:"name,omitempty" yaml:"name"`
	Movement        int    `json:"movement" yaml:"movement"`
	Toughness       int    `json:"toughness" yaml:"toughness"`
	Speed           int    `json:"speed" yaml:"speed"`
	Damage          int    `json:"damage" yaml:"damage"`
	Accuracy        int    `json:"accuracy" yaml:"accuracy"`
	Evasion         int    `json:"evasion" yaml:"evasion"`
	Luck            int    `json:"luck" yaml:"luck"`
	Strength        int    `json:"strength" yaml:"strength"`
	Wounds          int    `json:"wounds" yaml:"wounds"`
	KnockedDown     bool   `json:"knockedDown" yaml:"knockedDown"`
	AIDeck          AIDeck `json:"aiDeck" yaml:"aiDeck"`
	AIDeckRemaining int    `json:"aiDeckRemaining" yaml:"aiDeckRemaining"`
	Notes           string `json:"notes,omitempty" yaml:"notes"`
}

// Hunt is an active or resolved hunt across the board
type Hunt struct {
	ID               string                `json:"id"`
	SettlementID     string                `json:"settlementId"`
	QuarryName       string                `json:"quarryName"`
	QuarryLevel      int                   `json:"quarryLevel"`
	Survivors        []string              `json:"survivors"`
	Scout            string                `json:"scout,omitempty"`
	SurvivorPosition int                   `json:"survivorPosition"`
	QuarryPosition   int                   `json:"quarryPosition"`
	Ambush           bool                  `json:"ambush"`
	Status           ActivityStatus        `json:"status"`
	Outcome          HuntOutcome           `json:"outcome,omitempty"`
	LastMoved        Mover                 `json:"lastMoved,omitempty"`
	SurvivorDetails  []HuntSurvivorDetails `json:"survivorDetails"`
}

// EntityID implements Identified
func (h Hunt) EntityID() string { return h.ID }

// Showdown is an active or ended combat encounter
type Showdown struct {
	ID              string                    `json:"id"`
	HuntID          string                    `json:"huntId,omitempty"`
	SettlementID    string                    `json:"settlementId"`
	MonsterName     string                    `json:"monsterName"`
	MonsterLevel    int                       `json:"monsterLevel"`
	Type            MonsterType               `json:"type"`
	Survivors       []string                  `json:"survivors"`
	Scout           string                    `json:"scout,omitempty"`
	Ambush          bool                      `json:"ambush"`
	Monster         MonsterInstanceData       `json:"monster"`
	Turn            ShowdownTurn              `json:"turn"`
	SurvivorDetails []ShowdownSurvivorDetails `json:"survivorDetails"`
	Status          ActivityStatus            `json:"status"`
	Outcome         ShowdownOutcome           `json:"outcome,omitempty"`
}

// EntityID implements Identified
func (s Showdown) EntityID() string { return s.ID }

// EntityID implements Identified
func (s Settlement) EntityID() string { return s.ID }

// EntityID implements Identified
func (s Survivor) EntityID() string { return s.ID }

// Identified is implemented by every entity stored in a campaign collection
type Identified interface {
	EntityID() string
}
