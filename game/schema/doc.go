// Package schema checks candidate campaign entities against their structural
// and numeric invariants before they are committed.
//
// Each entity has a rule table of {field, validator tag, error kind} rows
// evaluated in order with go-playground/validator; the first violated row is
// returned as an *engine.ValidationError. ValidateCampaign additionally checks
// the references between entities.
//
// Validators are pure: they never modify the entity and never panic on nil input.
package schema
