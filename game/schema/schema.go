package schema

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wricardo/campaign-keeper/game/engine"
)

// Kind names the entity type passed to Validate
type Kind string

const (
	KindSettlement Kind = "settlement"
	KindSurvivor   Kind = "survivor"
	KindHunt       Kind = "hunt"
	KindShowdown   Kind = "showdown"
	KindCampaign   Kind = "campaign"
	KindMonster    Kind = "monster"
)

// validate holds the predicates every rule table is checked with.
// Initialized in init() with the custom tags.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("nonblank", validateNonBlank)
}

// validateNonBlank rejects empty and whitespace-only strings
func validateNonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// rule is one row of a validation table: the field's value must satisfy tag,
// otherwise the entity fails with kind.
type rule[T any] struct {
	field   string
	tag     string
	kind    error
	message string
	value   func(*T) any
}

// check returns the first row of rules that v violates
func check[T any](entity, prefix string, v *T, rules []rule[T]) error {
	for _, r := range rules {
		val := r.value(v)
		if err := validate.Var(val, r.tag); err != nil {
			return engine.NewValidationError(r.kind, entity, prefix+r.field, val, "%s", r.message)
		}
	}
	return nil
}

// Validate dispatches to the validator for kind. Values and pointers are both
// accepted; a nil or mistyped entity is reported as a failure.
func Validate(kind Kind, entity any) error {
	switch kind {
	case KindSettlement:
		return dispatch(kind, entity, ValidateSettlement)
	case KindSurvivor:
		return dispatch(kind, entity, ValidateSurvivor)
	case KindHunt:
		return dispatch(kind, entity, ValidateHunt)
	case KindShowdown:
		return dispatch(kind, entity, ValidateShowdown)
	case KindCampaign:
		return dispatch(kind, entity, ValidateCampaign)
	case KindMonster:
		return dispatch(kind, entity, ValidateMonster)
	default:
		return engine.NewValidationError(engine.ErrBounds, string(kind), "", kind, "unknown entity kind %q", kind)
	}
}

func dispatch[T any](kind Kind, entity any, fn func(*T) error) error {
	switch v := entity.(type) {
	case *T:
		return fn(v)
	case T:
		return fn(&v)
	case nil:
		return missing(kind)
	default:
		return engine.NewValidationError(engine.ErrBounds, string(kind), "", fmt.Sprintf("%T", entity),
			"expected a %s, got %T", kind, entity)
	}
}

func missing(kind Kind) error {
	return engine.NewValidationError(engine.ErrEntityNotFound, string(kind), "", nil, "no %s given", kind)
}

// ValidateMonsterInstance checks monster stats against the declared shape
func ValidateMonsterInstance(multi bool, data engine.MonsterInstanceData) error {
	switch {
	case data.Empty():
		return engine.NewValidationError(engine.ErrBounds, "monster", "stats", nil, "no monster stats given")
	case multi && !data.IsMulti():
		return engine.NewValidationError(engine.ErrBounds, "monster", "stats", data.Shape,
			"multi-monster data must list one stat block per instance")
	case !multi && data.IsMulti():
		return engine.NewValidationError(engine.ErrBounds, "monster", "stats", data.Shape,
			"single monster data must be one stat block")
	case data.IsMulti() && len(data.Multi) == 0:
		return engine.NewValidationError(engine.ErrBounds, "monster", "stats", 0,
			"multi-monster data must list at least one instance")
	case data.Shape == engine.ShapeSingle && data.Single == nil:
		return engine.NewValidationError(engine.ErrBounds, "monster", "stats", nil, "no monster stats given")
	}

	for i, stats := range data.All() {
		prefix := ""
		if data.IsMulti() {
			prefix = fmt.Sprintf("[%d].", i)
		}
		if err := checkStats(prefix, &stats); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMonster checks a reference dataset entry
func ValidateMonster(def *engine.MonsterDefinition) error {
	if def == nil {
		return missing(KindMonster)
	}
	if err := check("monster", "", def, monsterRules); err != nil {
		return err
	}

	for _, level := range slices.Sorted(maps.Keys(def.Levels)) {
		if level < engine.MinMonsterLevel || level > engine.MaxMonsterLevel {
			return engine.NewValidationError(engine.ErrBounds, "monster", "levels", level,
				"%s: level %d out of range [%d,%d]", def.Name, level, engine.MinMonsterLevel, engine.MaxMonsterLevel)
		}
		if err := ValidateMonsterInstance(def.MultiMonster, def.Levels[level]); err != nil {
			return fmt.Errorf("%s level %d: %w", def.Name, level, err)
		}
	}
	return nil
}

var monsterRules = []rule[engine.MonsterDefinition]{
	{"name", "nonblank", engine.ErrEmptyName, "name must not be empty",
		func(d *engine.MonsterDefinition) any { return d.Name }},
	{"type", "oneof=quarry nemesis", engine.ErrBounds, "type must be quarry or nemesis",
		func(d *engine.MonsterDefinition) any { return d.Type }},
	{"levels", "min=1", engine.ErrBounds, "at least one level is required",
		func(d *engine.MonsterDefinition) any { return d.Levels }},
}

var statsRules = []rule[engine.MonsterStats]{
	{"movement", "gte=0", engine.ErrBounds, "movement must be >= 0",
		func(s *engine.MonsterStats) any { return s.Movement }},
	{"toughness", "gte=0", engine.ErrBounds, "toughness must be >= 0",
		func(s *engine.MonsterStats) any { return s.Toughness }},
	{"wounds", "gte=0", engine.ErrBounds, "wounds must be >= 0",
		func(s *engine.MonsterStats) any { return s.Wounds }},
	{"aiDeck.basic", "gte=0", engine.ErrBounds, "card counts must be >= 0",
		func(s *engine.MonsterStats) any { return s.AIDeck.Basic }},
	{"aiDeck.advanced", "gte=0", engine.ErrBounds, "card counts must be >= 0",
		func(s *engine.MonsterStats) any { return s.AIDeck.Advanced }},
	{"aiDeck.legendary", "gte=0", engine.ErrBounds, "card counts must be >= 0",
		func(s *engine.MonsterStats) any { return s.AIDeck.Legendary }},
	{"aiDeck.overtone", "gte=0", engine.ErrBounds, "card counts must be >= 0",
		func(s *engine.MonsterStats) any { return s.AIDeck.Overtone }},
	{"aiDeckRemaining", "gte=0", engine.ErrBounds, "remaining cards must be >= 0",
		func(s *engine.MonsterStats) any { return s.AIDeckRemaining }},
}

func checkStats(prefix string, s *engine.MonsterStats) error {
	if err := check("monster", prefix, s, statsRules); err != nil {
		return err
	}
	if total := s.AIDeck.Total(); s.AIDeckRemaining > total {
		return engine.NewValidationError(engine.ErrBounds, "monster", prefix+"aiDeckRemaining", s.AIDeckRemaining,
			"remaining cards %d exceed deck size %d", s.AIDeckRemaining, total)
	}
	return nil
}
