package resolve

import "github.com/Ishaq7892/trafficsense/core/model"

// Profile annotates a known area with its category and the keywords
// that hint at it in free-text location names.
type Profile struct {
	Name     string
	Category model.AreaCategory
	Keywords []string
}

// Profiles returns a copy of the known-area table.
func Profiles() []Profile {
	out := make([]Profile, len(knownAreas))
	copy(out, knownAreas)
	return out
}

// knownAreas is the fixed table of monitored areas. Order matters for
// deterministic tie-breaking when two areas score equally.
var knownAreas = []Profile{
	{
		Name:     "Mysore Palace Area",
		Category: model.CategoryCentral,
		Keywords: []string{"palace", "central", "downtown", "city center", "main", "heritage"},
	},
	{
		Name:     "Gokulam",
		Category: model.CategoryResidential,
		Keywords: []string{"residential", "north", "layout", "suburb", "neighborhood"},
	},
	{
		Name:     "Jayalakshmipuram",
		Category: model.CategoryResidential,
		Keywords: []string{"residential", "north", "layout", "suburb", "colony"},
	},
	{
		Name:     "Vijayanagar",
		Category: model.CategoryCommercial,
		Keywords: []string{"market", "commercial", "shopping", "business", "east"},
	},
	{
		Name:     "KRS Road",
		Category: model.CategoryHighway,
		Keywords: []string{"highway", "road", "expressway", "route", "corridor", "south"},
	},
	{
		Name:     "Chamundi Hill Road",
		Category: model.CategoryTourist,
		Keywords: []string{"hill", "scenic", "tourist", "religious", "temple", "route"},
	},
	{
		Name:     "Bannimantap",
		Category: model.CategoryMixed,
		Keywords: []string{"central", "residential", "mixed", "area"},
	},
	{
		Name:     "Kuvempunagar",
		Category: model.CategoryResidential,
		Keywords: []string{"residential", "west", "layout", "suburb", "quiet"},
	},
	{
		Name:     "Hebbal",
		Category: model.CategoryIndustrial,
		Keywords: []string{"industrial", "warehouse", "east", "business", "commercial"},
	},
	{
		Name:     "Saraswathipuram",
		Category: model.CategoryResidential,
		Keywords: []string{"residential", "north", "colony", "suburb", "layout"},
	},
}
