package recipe

import "strings"

// Metadata keys as stored alongside each document.
const (
	KeyTitle        = "title"
	KeyImageURL     = "image_url"
	KeyRegion       = "region"
	KeyCategory     = "category"
	KeyCookingTime  = "cooking_time"
	KeyDifficulty   = "difficulty"
	KeyDietType     = "diet_type"
	KeyIngredients  = "ingredients"
	KeyInstructions = "instructions"
	KeyNutrition    = "nutrition"
	KeyTags         = "tags"
)

// Keys lists the eleven metadata keys in schema order.
var Keys = []string{
	KeyTitle, KeyImageURL, KeyRegion, KeyCategory, KeyCookingTime, KeyDifficulty,
	KeyDietType, KeyIngredients, KeyInstructions, KeyNutrition, KeyTags,
}

// Record is one normalized recipe. Every field except ID and Title may be empty.
type Record struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ImageURL     string `json:"image_url"`
	Region       string `json:"region"`
	Category     string `json:"category"`
	CookingTime  string `json:"cooking_time"`
	Difficulty   string `json:"difficulty"`
	DietType     string `json:"diet_type"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Nutrition    string `json:"nutrition"`
	Tags         string `json:"tags"`
}

// Categories splits the "/"-delimited category string into trimmed, non-empty parts.
func (r Record) Categories() []string {
	var out []string
	for _, c := range strings.Split(r.Category, "/") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Metadata flattens the record into the store's metadata map. The id is not
// part of the map; the store keys records by it separately.
func (r Record) Metadata() map[string]string {
	return map[string]string{
		KeyTitle:        r.Title,
		KeyImageURL:     r.ImageURL,
		KeyRegion:       r.Region,
		KeyCategory:     r.Category,
		KeyCookingTime:  r.CookingTime,
		KeyDifficulty:   r.Difficulty,
		KeyDietType:     r.DietType,
		KeyIngredients:  r.Ingredients,
		KeyInstructions: r.Instructions,
		KeyNutrition:    r.Nutrition,
		KeyTags:         r.Tags,
	}
}

// FromMetadata rebuilds a record from a stored metadata map. Missing keys
// become empty strings.
func FromMetadata(id string, md map[string]string) Record {
	return Record{
		ID:           id,
		Title:        md[KeyTitle],
		ImageURL:     md[KeyImageURL],
		Region:       md[KeyRegion],
		Category:     md[KeyCategory],
		CookingTime:  md[KeyCookingTime],
		Difficulty:   md[KeyDifficulty],
		DietType:     md[KeyDietType],
		Ingredients:  md[KeyIngredients],
		Instructions: md[KeyInstructions],
		Nutrition:    md[KeyNutrition],
		Tags:         md[KeyTags],
	}
}
