package dashboard

type Category string

const (
	CategoryCore        Category = "core"
	CategoryCombat      Category = "combat"
	CategoryEconomy     Category = "economy"
	CategoryVision      Category = "vision"
	CategoryPerformance Category = "performance"
)

const (
	StatKills             = "kills"
	StatDeaths            = "deaths"
	StatAssists           = "assists"
	StatWin               = "win"
	StatKDA               = "kda"
	StatDamage            = "total_damage_dealt_to_champions"
	StatDamagePerMinute   = "damage_per_minute"
	StatDoubleKills       = "double_kills"
	StatTripleKills       = "triple_kills"
	StatQuadraKills       = "quadra_kills"
	StatPentaKills        = "penta_kills"
	StatGoldEarned        = "gold_earned"
	StatGoldPerMinute     = "gold_per_minute"
	StatMinionsKilled     = "total_minions_killed"
	StatVisionScore       = "vision_score"
	StatWardsPlaced       = "wards_placed"
	StatWardsKilled       = "wards_killed"
	StatKillParticipation = "kill_participation"
)

const (
	MutedColor    = "#9ca3af"
	FallbackColor = "#6b7280"
)

type StatDescriptor struct {
	Key               string   `json:"key"`
	Label             string   `json:"label"`
	Category          Category `json:"category"`
	IsDefaultSelected bool     `json:"is_default_selected"`
}

type CategoryInfo struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
}

// CategoryGroup is one section of the stat filter.
type CategoryGroup struct {
	CategoryInfo
	Stats []StatDescriptor
}

var catalog = []StatDescriptor{
	{StatKills, "Kills", CategoryCore, true},
	{StatDeaths, "Deaths", CategoryCore, true},
	{StatAssists, "Assists", CategoryCore, true},
	{StatWin, "Wins", CategoryCore, true},

	{StatKDA, "KDA", CategoryPerformance, false},
	{StatDamage, "Damage to Champions", CategoryCombat, false},
	{StatDamagePerMinute, "Damage per Minute", CategoryCombat, false},
	{StatDoubleKills, "Double Kills", CategoryCombat, false},
	{StatTripleKills, "Triple Kills", CategoryCombat, false},
	{StatQuadraKills, "Quadra Kills", CategoryCombat, false},
	{StatPentaKills, "Penta Kills", CategoryCombat, false},

	{StatGoldEarned, "Gold Earned", CategoryEconomy, false},
	{StatGoldPerMinute, "Gold per Minute", CategoryEconomy, false},
	{StatMinionsKilled, "CS (Minions)", CategoryEconomy, false},

	{StatVisionScore, "Vision Score", CategoryVision, false},
	{StatWardsPlaced, "Wards Placed", CategoryVision, false},
	{StatWardsKilled, "Wards Destroyed", CategoryVision, false},

	{StatKillParticipation, "Kill Participation %", CategoryPerformance, false},
}

var categoryLabels = map[Category]string{
	CategoryCore:        "Core Stats",
	CategoryCombat:      "Combat Stats",
	CategoryEconomy:     "Economy Stats",
	CategoryVision:      "Vision Stats",
	CategoryPerformance: "Performance Metrics",
}

var statColors = map[string]string{
	StatKills:             "#10b981",
	StatDeaths:            "#ef4444",
	StatAssists:           "#3b82f6",
	StatKDA:               "#8b5cf6",
	StatDamage:            "#f59e0b",
	StatDamagePerMinute:   "#f97316",
	StatGoldEarned:        "#fbbf24",
	StatGoldPerMinute:     "#fb923c",
	StatMinionsKilled:     "#a855f7",
	StatVisionScore:       "#06b6d4",
	StatWardsPlaced:       "#0891b2",
	StatWardsKilled:       "#0e7490",
	StatKillParticipation: "#ec4899",
	StatDoubleKills:       "#84cc16",
	StatTripleKills:       "#65a30d",
	StatQuadraKills:       "#16a34a",
	StatPentaKills:        "#059669",
}

var shortLabels = map[string]string{
	StatKills:             "Kills",
	StatDeaths:            "Deaths",
	StatAssists:           "Assists",
	StatKDA:               "KDA",
	StatDamage:            "Damage",
	StatDamagePerMinute:   "DPM",
	StatGoldEarned:        "Gold",
	StatGoldPerMinute:     "GPM",
	StatMinionsKilled:     "CS",
	StatVisionScore:       "Vision",
	StatWardsPlaced:       "Wards",
	StatWardsKilled:       "Wards Killed",
	StatKillParticipation: "KP%",
	StatDoubleKills:       "Doubles",
	StatTripleKills:       "Triples",
	StatQuadraKills:       "Quadras",
	StatPentaKills:        "Pentas",
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, d := range catalog {
		idx[d.Key] = i
	}
	return idx
}()

// Catalog returns a copy of every known stat, in display order.
func Catalog() []StatDescriptor {
	out := make([]StatDescriptor, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(key string) (StatDescriptor, bool) {
	i, ok := catalogIndex[key]
	if !ok {
		return StatDescriptor{}, false
	}
	return catalog[i], true
}

func Known(key string) bool {
	_, ok := catalogIndex[key]
	return ok
}

func DefaultSelection() []string {
	var keys []string
	for _, d := range catalog {
		if d.IsDefaultSelected {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// Categories lists categories in the order they first appear in the catalog.
func Categories() []CategoryInfo {
	var out []CategoryInfo
	seen := map[Category]bool{}
	for _, d := range catalog {
		if seen[d.Category] {
			continue
		}
		seen[d.Category] = true
		out = append(out, CategoryInfo{Category: d.Category, Label: CategoryLabel(d.Category)})
	}
	return out
}

func ByCategory() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categoryLabels))
	pos := map[Category]int{}
	for _, d := range catalog {
		i, ok := pos[d.Category]
		if !ok {
			i = len(groups)
			pos[d.Category] = i
			groups = append(groups, CategoryGroup{
				CategoryInfo: CategoryInfo{Category: d.Category, Label: CategoryLabel(d.Category)},
			})
		}
		groups[i].Stats = append(groups[i].Stats, d)
	}
	return groups
}

func CategoryLabel(c Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func Color(key string) string {
	if c, ok := statColors[key]; ok {
		return c
	}
	return FallbackColor
}

func ShortLabel(key string) string {
	if l, ok := shortLabels[key]; ok {
		return l
	}
	return key
}

// Sanitize drops unknown and duplicate keys, keeping first-seen order.
func Sanitize(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := map[string]bool{}
	for _, k := range keys {
		if !Known(k) || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
