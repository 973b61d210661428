// Package localization translates recipe text through the completion
// service. Every failure degrades to the original text.
package localization

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shorechef/backend/internal/completion"
	"github.com/shorechef/backend/internal/recipe"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent title translations.
const DefaultWorkers = 4

const fieldsPrompt = `Translate the following recipe components into %s.
Provide the output ONLY as a raw JSON object with the keys "translated_ingredients", "translated_instructions", and "translated_nutrition".
Original Components:
"ingredients": '''%s'''
"instructions": '''%s'''
"nutrition": '''%s'''
JSON Output:
`

// Fields are the long-form recipe fields translated together.
type Fields struct {
	Ingredients  string
	Instructions string
	Nutrition    string
}

func (f Fields) empty() bool {
	return f.Ingredients == "" && f.Instructions == "" && f.Nutrition == ""
}

// Reply keys of the JSON-mode translation.
const (
	keyIngredients  = "translated_ingredients"
	keyInstructions = "translated_instructions"
	keyNutrition    = "translated_nutrition"
)

// Translator localizes recipe text.
type Translator struct {
	completer completion.Completer
	cache     Cache
	workers   int
	log       logrus.FieldLogger
}

// Option configures a Translator.
type Option func(*Translator)

// WithCache stores translations in c.
func WithCache(c Cache) Option {
	return func(t *Translator) { t.cache = c }
}

// WithWorkers sets the title translation pool size.
func WithWorkers(n int) Option {
	return func(t *Translator) {
		if n > 0 {
			t.workers = n
		}
	}
}

// New returns a Translator backed by c. A nil or unavailable completer
// makes every call a pass-through.
func New(c completion.Completer, log logrus.FieldLogger, opts ...Option) *Translator {
	t := &Translator{
		completer: c,
		workers:   DefaultWorkers,
		log:       log.WithField("component", "localization"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsEnglish reports whether lang needs no translation.
func IsEnglish(lang string) bool {
	lang = strings.TrimSpace(lang)
	return lang == "" || strings.EqualFold(lang, "english")
}

func (t *Translator) enabled(lang string) bool {
	return !IsEnglish(lang) && completion.IsAvailable(t.completer)
}

// TranslateText translates a single piece of text into lang.
func (t *Translator) TranslateText(ctx context.Context, text, lang string) string {
	if strings.TrimSpace(text) == "" || !t.enabled(lang) {
		return text
	}

	key := cacheKey(lang, "text", text)
	if cached, ok := t.lookup(ctx, key); ok {
		return cached
	}

	prompt := fmt.Sprintf("Translate the following text into %s:\n%s", lang, text)
	out := completion.Interpret(t.completer.Generate(ctx, prompt))
	if !out.OK() {
		t.log.WithFields(logrus.Fields{
			"language": lang,
			"source":   out.Source,
		}).WithError(out.Err).Warn("Translation failed")
		return text
	}

	t.store(ctx, key, out.Text)
	return out.Text
}

// TranslateFields translates f in a single JSON-mode request. Keys missing
// from the reply keep their original value.
func (t *Translator) TranslateFields(ctx context.Context, f Fields, lang string) Fields {
	if f.empty() || !t.enabled(lang) {
		return f
	}

	prompt := fmt.Sprintf(fieldsPrompt, lang, f.Ingredients, f.Instructions, f.Nutrition)
	key := cacheKey(lang, "fields", prompt)

	reply, ok := t.lookup(ctx, key)
	if !ok {
		out := completion.Interpret(t.completer.Generate(ctx, prompt, completion.WithJSON()))
		if !out.OK() {
			t.log.WithFields(logrus.Fields{
				"language": lang,
				"source":   out.Source,
			}).WithError(out.Err).Warn("Field translation failed")
			return f
		}
		reply = out.Text
	}

	var raw map[string]json.RawMessage
	if err := completion.DecodeJSON(reply, &raw); err != nil {
		t.log.WithField("language", lang).WithError(err).Warn("Failed to parse translation JSON")
		return f
	}
	if !ok {
		t.store(ctx, key, reply)
	}

	log := t.log.WithField("language", lang)
	return Fields{
		Ingredients:  field(raw, keyIngredients, f.Ingredients, log),
		Instructions: field(raw, keyInstructions, f.Instructions, log),
		Nutrition:    field(raw, keyNutrition, f.Nutrition, log),
	}
}

// field returns the string at raw[key], or def when the key is missing,
// empty or not a string.
func field(raw map[string]json.RawMessage, key, def string, log logrus.FieldLogger) string {
	v, ok := raw[key]
	if !ok {
		return def
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		log.WithField("key", key).WithError(err).Warn("Translated field is not a string")
		return def
	}
	return orDefault(s, def)
}

// LocalizeRecord returns a copy of rec with its title and long-form
// fields translated.
func (t *Translator) LocalizeRecord(ctx context.Context, rec recipe.Record, lang string) recipe.Record {
	if !t.enabled(lang) {
		return rec
	}

	rec.Title = t.TranslateText(ctx, rec.Title, lang)
	f := t.TranslateFields(ctx, Fields{
		Ingredients:  rec.Ingredients,
		Instructions: rec.Instructions,
		Nutrition:    rec.Nutrition,
	}, lang)
	rec.Ingredients = f.Ingredients
	rec.Instructions = f.Instructions
	rec.Nutrition = f.Nutrition
	return rec
}

// LocalizeTitles translates every title on a bounded pool. The returned
// slice is a copy in the input order.
func (t *Translator) LocalizeTitles(ctx context.Context, recs []recipe.Record, lang string) []recipe.Record {
	out := make([]recipe.Record, len(recs))
	copy(out, recs)
	if len(out) == 0 || !t.enabled(lang) {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers)
	for i := range out {
		g.Go(func() error {
			out[i].Title = t.TranslateText(gctx, out[i].Title, lang)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (t *Translator) lookup(ctx context.Context, key string) (string, bool) {
	if t.cache == nil {
		return "", false
	}
	v, ok, err := t.cache.Get(ctx, key)
	if err != nil {
		t.log.WithError(err).Warn("Translation cache read failed")
		return "", false
	}
	return v, ok
}

func (t *Translator) store(ctx context.Context, key, value string) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Set(ctx, key, value); err != nil {
		t.log.WithError(err).Warn("Translation cache write failed")
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
