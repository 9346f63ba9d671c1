package models

// StatCategory names a tracked counter on a fighter document.
type StatCategory string

const (
	StatWins   StatCategory = "wins"
	StatLosses StatCategory = "losses"
	StatDraws  StatCategory = "draws"
	StatRating StatCategory = "rating"
)

// AchievementDef pairs a stat threshold with the achievement it unlocks.
type AchievementDef struct {
	Threshold int
	Name      string
}

// AchievementCatalog is the static catalog, loaded once and never mutated at
// runtime. Unlocks use exact-match semantics: an achievement fires when the
// counter EQUALS the threshold, not when it crosses it. A bulk import that
// skips over a threshold value will therefore skip the unlock; callers that
// apply stats in non-unit increments must account for that.
var AchievementCatalog = map[StatCategory][]AchievementDef{
	StatWins: {
		{Threshold: 1, Name: "Victory: Reach 1 Win"},
		{Threshold: 10, Name: "Rising Fighter: Reach 10 Wins"},
		{Threshold: 25, Name: "Veteran Warrior: Reach 25 Wins"},
		{Threshold: 50, Name: "Champion: Reach 50 Wins"},
	},
	StatLosses: {
		{Threshold: 1, Name: "Defeat: Reach 1 Loss"},
		{Threshold: 10, Name: "Resiliant Fighter: Reach 10 Losses"},
		{Threshold: 25, Name: "Never Back Down: Reach 25 Losses"},
	},
	StatDraws: {
		{Threshold: 1, Name: "Stalemate: Reach 1 Draw"},
		{Threshold: 10, Name: "Equalizer: Reach 10 Draws"},
		{Threshold: 25, Name: "Perfectly Balanced: Reach 25 Draws"},
	},
	StatRating: {
		{Threshold: 0, Name: "Rock Bottom: Reach 0 Rating"},
		{Threshold: 900, Name: "New Low: Reach 900 Rating"},
		{Threshold: 1100, Name: "Proven Fighter: Reach 1100 Rating"},
		{Threshold: 1500, Name: "Top of the Mountain: Reach 1500 Rating"},
	},
}

// StatValues extracts the tracked counters from a fighter.
func (f *Fighter) StatValues() map[StatCategory]int {
	return map[StatCategory]int{
		StatWins:   f.Wins,
		StatLosses: f.Losses,
		StatDraws:  f.Draws,
		StatRating: f.Rating,
	}
}

// PendingUnlocks scans the catalog against the fighter's current counters and
// returns the names whose threshold is hit exactly and which the fighter does
// not already hold, in catalog order.
func (f *Fighter) PendingUnlocks() []string {
	held := make(map[string]bool, len(f.Achievements))
	for _, a := range f.Achievements {
		held[a.Name] = true
	}

	var names []string
	for _, category := range []StatCategory{StatWins, StatLosses, StatDraws, StatRating} {
		value := f.StatValues()[category]
		for _, def := range AchievementCatalog[category] {
			if def.Threshold == value && !held[def.Name] {
				names = append(names, def.Name)
			}
		}
	}
	return names
}
