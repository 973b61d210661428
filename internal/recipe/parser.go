// Package recipe turns raw recipe blocks into typed records.
//
// Parsing happens in two steps. SplitSections walks the block once and cuts
// it into labelled sections, keeping every label it sees. Project then maps
// the sections it knows onto Record and drops the rest.
package recipe

import (
	"regexp"
	"strings"
)

// labelPattern matches "<label>: <value>" where the label is a run of word,
// space or slash characters.
var labelPattern = regexp.MustCompile(`^([\p{L}\p{N}_\s/]+):\s*(.*)$`)

// Section is one labelled span of a recipe block.
type Section struct {
	Key   string
	Value string
}

// fieldAliases maps normalized section keys onto record fields. The first
// entry of each group is the label used by the corpus.
var fieldAliases = map[string]string{
	"recipe_title": KeyTitle,
	"title":        KeyTitle,
	"imageurl":     KeyImageURL,
	"image_url":    KeyImageURL,
	"region":       KeyRegion,
	"category":     KeyCategory,
	"cooking_time": KeyCookingTime,
	"cookingtime":  KeyCookingTime,
	"difficulty":   KeyDifficulty,
	"diet_type":    KeyDietType,
	"diettype":     KeyDietType,
	"ingredients":  KeyIngredients,
	"instructions": KeyInstructions,
	"nutrition":    KeyNutrition,
	"tags":         KeyTags,
}

// NormalizeKey lowercases a label and removes whitespace and slashes.
func NormalizeKey(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch r {
		case ' ', '\t', '\r', '\n', '\v', '\f', '/':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitSections cuts text into sections in a single top-to-bottom pass. A
// label line opens a new section; any other line is appended to the open
// section. Lines before the first label are ignored.
func SplitSections(text string) []Section {
	var (
		sections []Section
		key      string
		lines    []string
		open     bool
	)

	flush := func() {
		if open {
			sections = append(sections, Section{
				Key:   key,
				Value: strings.TrimSpace(strings.Join(lines, "\n")),
			})
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if m := labelPattern.FindStringSubmatch(line); m != nil {
			flush()
			key = NormalizeKey(m[1])
			lines = []string{strings.TrimSpace(m[2])}
			open = true
			continue
		}
		if open {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	flush()

	return sections
}

// Project maps sections onto the fixed record schema. Unknown keys are
// dropped and a later section overwrites an earlier one for the same field.
func Project(sections []Section) Record {
	md := make(map[string]string, len(Keys))
	for _, s := range sections {
		if field, ok := fieldAliases[s.Key]; ok {
			md[field] = s.Value
		}
	}
	return FromMetadata("", md)
}

// Parse parses one raw recipe block. It never fails: absent sections yield
// empty fields and the caller decides what an empty title means.
func Parse(text string) Record {
	return Project(SplitSections(text))
}
