package styles

import "strings"

type Category string

const (
	CategoryAbstract  Category = "abstract"
	CategoryLandscape Category = "landscape"
	CategoryMinimal   Category = "minimal"
	CategoryClassic   Category = "classic"
	CategorySciFi     Category = "sci-fi"
	CategoryBotanical Category = "botanical"
)

// Style is an immutable catalog entry. Prompt is the fragment spliced
// verbatim into crafting instructions.
type Style struct {
	ID          string
	Name        string
	Category    Category
	Description string
	Prompt      string
}

var catalog = []Style{
	{
		ID:          "watercolor-dream",
		Name:        "Watercolor Dream",
		Category:    CategoryClassic,
		Description: "Soft washes of pigment bleeding into textured paper",
		Prompt:      "a dreamy watercolor painting with soft color washes, delicate pigment blooms and visible paper grain",
	},
	{
		ID:          "dawn-glow",
		Name:        "Dawn Glow",
		Category:    CategoryLandscape,
		Description: "First light over quiet terrain, warm against cool",
		Prompt:      "a serene landscape at first light, warm golden glow meeting cool morning shadow, atmospheric haze",
	},
	{
		ID:          "minimal-lines",
		Name:        "Minimal Lines",
		Category:    CategoryMinimal,
		Description: "Sparse geometry on generous negative space",
		Prompt:      "a minimalist composition of clean simple lines and sparse geometric forms on generous negative space",
	},
	{
		ID:          "oil-impasto",
		Name:        "Oil Impasto",
		Category:    CategoryClassic,
		Description: "Thick sculptural brushwork in the old-master manner",
		Prompt:      "a richly textured oil painting with thick impasto brushstrokes, dramatic chiaroscuro lighting",
	},
	{
		ID:          "neon-metropolis",
		Name:        "Neon Metropolis",
		Category:    CategorySciFi,
		Description: "Rain-slicked streets under electric signage",
		Prompt:      "a cinematic futuristic cityscape at night, neon signage reflecting off rain-slicked streets, volumetric light",
	},
	{
		ID:          "nebula-drift",
		Name:        "Nebula Drift",
		Category:    CategorySciFi,
		Description: "Deep-space color fields and stellar dust",
		Prompt:      "a vast cosmic nebula with drifting clouds of stellar dust, deep saturated color fields and distant starlight",
	},
	{
		ID:          "ink-wash",
		Name:        "Ink Wash",
		Category:    CategoryMinimal,
		Description: "Sumi-e restraint, a few confident strokes",
		Prompt:      "a simple clean sumi-e ink wash with a few confident brushstrokes and vast empty space",
	},
	{
		ID:          "botanical-plate",
		Name:        "Botanical Plate",
		Category:    CategoryBotanical,
		Description: "Scientific-illustration flora, precisely rendered",
		Prompt:      "a detailed botanical illustration of flowering plants, precise linework and naturalist color plates",
	},
	{
		ID:          "tidal-abstract",
		Name:        "Tidal Abstract",
		Category:    CategoryAbstract,
		Description: "Fluid pigment currents caught mid-motion",
		Prompt:      "an abstract fluid artwork of swirling pigment currents caught mid-motion, organic marbled flow",
	},
	{
		ID:          "color-field",
		Name:        "Color Field",
		Category:    CategoryAbstract,
		Description: "Large luminous planes of layered color",
		Prompt:      "a color field painting of large luminous planes of layered translucent color with soft diffuse edges",
	},
	{
		ID:          "alpine-dusk",
		Name:        "Alpine Dusk",
		Category:    CategoryLandscape,
		Description: "Mountain silhouettes after the sun has gone",
		Prompt:      "dramatic mountain silhouettes at dusk, layered ridgelines fading into a gradient of violet and ember",
	},
	{
		ID:          "paper-botanics",
		Name:        "Paper Botanics",
		Category:    CategoryBotanical,
		Description: "Cut-paper leaves in layered relief",
		Prompt:      "layered cut-paper botanical shapes in gentle relief, soft shadows between simple clean leaf forms",
	},
}

// All returns the build-time catalog. Callers must not mutate entries.
func All() []Style {
	out := make([]Style, len(catalog))
	copy(out, catalog)
	return out
}

// Find matches a style by id or display name, case-insensitively.
func Find(q string) (Style, bool) {
	q = strings.TrimSpace(q)
	for _, s := range catalog {
		if strings.EqualFold(s.ID, q) || strings.EqualFold(s.Name, q) {
			return s, true
		}
	}
	return Style{}, false
}
