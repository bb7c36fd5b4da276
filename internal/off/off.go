// Package off builds the offline product bundle from the OpenFoodFacts CSV
// export. The pipeline has three stages: fetch downloads the compressed
// export, filter reduces it to a clean country-scoped CSV, and build turns
// the clean CSV into a seed sqlite database ready to ship with the app.
package off

// Column names of the OpenFoodFacts export that survive into the clean CSV.
// The export carries hundreds of columns; only this subset is useful for the
// offline bundle.
var keepColumns = []string{
	"code",
	"product_name",
	"brands",
	"categories",
	"quantity",
	"nutriscore_grade",
	"nutriscore_score",
	"nova_group",
	"energy-kcal_100g",
	"proteins_100g",
	"carbohydrates_100g",
	"sugars_100g",
	"fat_100g",
	"saturated-fat_100g",
	"fiber_100g",
	"salt_100g",
	"sodium_100g",
}

// countriesColumn is consulted by the filter stage but not written to the
// clean CSV.
const countriesColumn = "countries_tags"
