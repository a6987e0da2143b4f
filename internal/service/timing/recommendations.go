package timing

// recommendedHours maps a supplement category to candidate reminder hours
// backed by absorption guidance (fat-soluble vitamins with meals, magnesium
// in the evening, iron away from other supplements).
var recommendedHours = map[string][]int{
	"vitamin_d":    {8, 12},
	"multivitamin": {8, 9},
	"b_complex":    {8, 10},
	"vitamin_c":    {9, 14},
	"iron":         {7, 16},
	"omega_3":      {12, 19},
	"calcium":      {13, 21},
	"magnesium":    {20, 21},
	"zinc":         {21, 22},
	"probiotic":    {7, 22},
}

// RecommendedHours returns the candidate hours for a category, or nil when
// the category has no entry.
func RecommendedHours(category string) []int {
	return recommendedHours[category]
}
