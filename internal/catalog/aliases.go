package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Aliases is the rename knowledge accumulated across schema generations:
// category spellings, field-name drift and the preferred in-category field
// order. The built-in defaults cover every generation seen so far; a YAML
// file can extend or override them without a rebuild.
type Aliases struct {
	// CategoryAliases maps lowercase category spellings to their canonical
	// lowercase label.
	CategoryAliases map[string]string `yaml:"category_aliases"`
	// FieldAliases maps normalized field names (uppercase, alphanumeric
	// only) to the normalized name actually used in lookups.
	FieldAliases map[string]string `yaml:"field_aliases"`
	// FieldSynonyms maps a canonical lowercase field name to the alternate
	// spellings documents have used for it.
	FieldSynonyms map[string][]string `yaml:"field_synonyms"`
	// ImportOrders lists the preferred field order per category.
	ImportOrders map[string][]string `yaml:"import_orders"`
}

// LoadAliases reads a YAML alias file and merges it over the defaults. Keys
// present in the file replace the built-in entry; everything else survives.
func LoadAliases(path string) (*Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file %s: %w", path, err)
	}

	var loaded Aliases
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", path, err)
	}

	merged := DefaultAliases()

	for k, v := range loaded.CategoryAliases {
		merged.CategoryAliases[k] = v
	}

	for k, v := range loaded.FieldAliases {
		merged.FieldAliases[k] = v
	}

	for k, v := range loaded.FieldSynonyms {
		merged.FieldSynonyms[k] = v
	}

	for k, v := range loaded.ImportOrders {
		merged.ImportOrders[k] = v
	}

	return merged, nil
}

// DefaultAliases returns the built-in rename knowledge.
func DefaultAliases() *Aliases {
	return &Aliases{
		CategoryAliases: map[string]string{
			"vitals_offsets":     "vitals",
			"attributes_offsets": "attributes",
			"tendencies_offsets": "tendencies",
			"hotzone_offsets":    "hotzones",
			"signature_offsets":  "signatures",
			"contract_offsets":   "contracts",
			"stats_offsets":      "stats",
			"edit_offsets":       "edit",
			"look_offsets":       "appearance",
			"shoes/gear_offsets": "gear",
			"team vitals":        "teams",
			"team_vitals":        "teams",
		},
		FieldAliases: map[string]string{
			"SHOT":                    "SHOOT",
			"SHOTTENDENCY":            "SHOOT",
			"SHOTSHOT":                "SHOOT",
			"SHOTATTRIBUTE":           "SHOOT",
			"SHOTMIDRANGE":            "SHOTMID",
			"SPOTUPSHOTMIDRANGE":      "SPOTUPSHOTMID",
			"OFFSCREENSHOTMIDRANGE":   "OFFSCREENSHOTMID",
			"SHOTTHREE":               "SHOT3PT",
			"SPOTUPSHOTTHREE":         "SPOTUPSHOT3PT",
			"OFFSCREENSHOTTHREE":      "OFFSCREENSHOT3PT",
			"SHOTTHREELEFT":           "SHOT3PTLEFT",
			"SHOTTHREELEFTCENTER":     "SHOT3PTLEFTCENTER",
			"SHOTTHREECENTER":         "SHOT3PTCENTER",
			"SHOTTHREERIGHTCENTER":    "SHOT3PTRIGHTCENTER",
			"SHOTTHREERIGHT":          "SHOT3PTRIGHT",
			"CONTESTEDJUMPERMIDRANGE": "CONTESTEDJUMPERMID",
			"CONTESTEDJUMPERTHREE":    "CONTESTEDJUMPER3PT",
			"STEPBACKJUMPERMIDRANGE":  "STEPBACKJUMPERMID",
			"STEPBACKJUMPERTHREE":     "STEPBACKJUMPER3PT",
			"SPINJUMPER":              "SPINJUMPERTENDENCY",
			"TRANSITIONPULLUPTHREE":   "TRANSITIONPULLUP3PT",
			"DRIVEPULLUPMIDRANGE":     "DRIVEPULLUPMID",
			"DRIVEPULLUPTHREE":        "DRIVEPULLUP3PT",
			"EUROSTEPLAYUP":           "EUROSTEP",
			"HOPSTEPLAYUP":            "HOPSTEP",
			"STANDINGDUNK":            "STANDINGDUNKTENDENCY",
			"DRIVINGDUNK":             "DRIVINGDUNKTENDENCY",
			"FLASHYDUNK":              "FLASHYDUNKTENDENCY",
			"DRIVINGBEHINDTHEBACK":    "DRIVINGBEHINDBACK",
			"DRIVINGINANDOUT":         "INANDOUT",
			"NODRIVINGDRIBBLEMOVE":    "NODRIBBLE",
			"TRANSITIONSPOTUP":        "SPOTUPCUT",
			"ISOVSELITEDEFENDER":      "ISOVSE",
			"ISOVSGOODDEFENDER":       "ISOVSG",
			"ISOVSAVERAGEDEFENDER":    "ISOVSA",
			"ISOVSPOORDEFENDER":       "ISOVSP",
			"SHOOTFROMPOST":           "POSTSHOT",
			"POSTSHIMMYSHOT":          "POSTSHIMMY",
			"ONBALLSTEAL":             "STEAL",
			"BLOCKSHOT":               "BLOCK",
			"CONTESTSHOT":             "CONTEST",
			"3PTSHOT":                 "THREEPOINT",
			"MIDRANGESHOT":            "MIDRANGE",
			"FREETHROWS":              "FREETHROW",
			"POSTMOVES":               "POSTCONTROL",
			"PASSACCURACY":            "PASSINGACCURACY",
			"PASSPERCEPTION":          "PASSINGPERCEPTION",
			"MISCANELLOUSDURABILITY":  "MISCDURABILITY",
			"SHOT3PTCENTER":           "SHOT3PTRIGHTCENTER",
			"SHOT3PTLEFT":             "SHOT3PTLEFTCENTER",
			"ALLEYOOPPASS":            "ALLEYOOP",
			"BLOCKTENDENCY":           "BLOCK",
			"DRIVINGCROSSOVER":        "DRIBBLECROSSOVER",
			"DRIBBLEDOUBLECROSSOVER":  "DRIBBLECROSSOVER",
			"DRIBBLEBEHINDTHEBACK":    "DRIVINGBEHINDBACK",
			"DRIBBLESTEPBACK":         "DRIVINGSTEPBACK",
			"POSTSHOOT":               "POSTSHOT",
			"POSTHOPSHOTTENDENCY":     "POSTHOPSHOT",
			"SPOTUPSHOTMID":           "MIDSHOT",
			"SHOTMID":                 "MIDSHOT",
			"NOSETUPDRIBBLEMOVE":      "NOSETUPDRIBBLE",
			"STEALTENDENCY":           "STEAL",
			"POSTFACEUP":              "POSTUP",
			"STEPTHROUGHSHOT":         "STEPTHROUGH",
		},
		FieldSynonyms: map[string][]string{
			"first name":      {"player_first_name", "first_name", "firstname", "offset player first name", "offset first name"},
			"last name":       {"player_last_name", "last_name", "lastname", "surname", "offset player last name", "offset last name"},
			"face id":         {"player_faceid", "faceid", "offset player face id", "offset face id"},
			"current team":    {"player team", "team", "team_id", "current team address", "offset player team"},
			"team name":       {"offset team name", "city name"},
			"team short name": {"team_short_name", "offset team short name", "team abbrev", "team abbreviation", "city abbrev"},
			"team year":       {"team year", "historic year", "offset team year"},
			"team type":       {"team type", "offset team type"},
		},
		ImportOrders: map[string][]string{
			"Attributes": {
				"Driving Layup", "Standing Dunk", "Driving Dunk", "Close Shot",
				"Mid Range", "Three Point", "Free Throw", "Post Hook",
				"Post Fade", "Post Control", "Draw Foul", "Shot IQ",
				"Ball Control", "Speed With Ball", "Hands", "Passing Accuracy",
				"Passing IQ", "Passing Vision", "Offensive Consistency",
				"Interior Defense", "Perimeter Defense", "Steal", "Block",
				"Offensive Rebound", "Defensive Rebound", "Help Defense IQ",
				"Passing Perception", "Defensive Consistency", "Speed",
				"Agility", "Strength", "Vertical", "Stamina", "Intangibles",
				"Hustle", "Misc Durability", "Potential",
			},
			"Durability": {
				"Back Durability", "Head Durability", "Left Ankle Durability",
				"Left Elbow Durability", "Left Foot Durability",
				"Left Hip Durability", "Left Knee Durability",
				"Left Shoulder Durability", "Neck Durability",
				"Right Ankle Durability", "Right Elbow Durability",
				"Right Foot Durability", "Right Hip Durability",
				"Right Knee Durability", "Right Shoulder Durability",
				"Misc Durability",
			},
			"Potential": {
				"Minimum Potential", "Potential", "Maximum Potential",
			},
			"Tendencies": {
				"Shot Three Right Center", "Shot Three Left Center",
				"Off Screen Shot Three", "Shot Three Right",
				"Spot Up Shot Three", "Alley Oop Pass",
				"Attack Strong On Drive", "Shot Under Basket",
				"Block Tendency", "Shot Mid Right Center", "Shot Close Middle",
				"Shot Close Right", "Shot Close Left",
				"Contested Jumper Three", "Contested Jumper Mid",
				"Contest Shot", "Crash", "Dish To Open Man",
				"Dribble Double Crossover", "Dribble Half Spin", "Drive",
				"Drive Pull Up Three", "Drive Pull Up Mid", "Drive Right",
				"Dribble Behind The Back", "Driving Dribble Hesitation",
				"Driving Dunk Tendency", "Driving In And Out",
				"Driving Layup Tendency", "Dribble Stepback",
				"Euro Step Layup", "Flashy Dunk", "Flashy Pass", "Floater",
				"Foul", "Post Shoot", "Hard Foul", "Post Hop Shot",
				"Hop Step Layup", "Iso Vs Average Defender",
				"Iso Vs Elite Defender", "Iso Vs Good Defender",
				"Iso Vs Poor Defender", "Shot Mid Left Center",
				"Off Screen Shot Mid", "Shot Mid Right", "Spot Up Shot Mid",
				"No Driving Dribble Move", "No Setup Dribble Move",
				"Off Screen Drive", "Steal Tendency", "Pass Interception",
				"Play Discipline", "Post Aggressive Backdown",
				"Post Back Down", "Post Drive", "Post Dropstep",
				"Post Fade Left", "Post Fade Right", "Post Hook Left",
				"Post Hook Right", "Post Hop Step", "Post Shimmy Shot",
				"Post Spin", "Post Stepback Shot", "Post Face Up",
				"Post Up And Under", "Putback Dunk", "Roll Vs Pop",
				"Setup With Hesitation", "Setup With Sizeup", "Shot Tendency",
				"Spin Jumper", "Spin Layup", "Spot Up Drive",
				"Standing Dunk Tendency", "Stepback Jumper Three",
				"Step Back Jumper Mid", "Step Through", "Take Charge",
				"Triple Threat Shoot", "Touches", "Transition Pull Up Three",
				"Transition Spot Up", "Triple Threat Idle",
				"Triple Threat Jab Step", "Triple Threat Pump Fake",
				"Use Glass",
			},
		},
	}
}
