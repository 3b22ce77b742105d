// Package engine provides the campaign data model and the rules that govern
// how it may change.
//
// The engine package implements:
//   - Typed campaign entities (settlements, survivors, hunts, showdowns)
//   - The 13-space hunt board with overlap and token placement
//   - The hunt state machine (start, move, resolve, abandon)
//   - The showdown turn machine (monster and survivor turns, rounds)
//   - The error taxonomy shared by every layer
//
// Core Types:
//
// Campaign is the root aggregate persisted by the session package. Hunt and
// Showdown carry their own state machines as methods; ShowdownTurn tracks whose
// turn it is and which per-turn resources have been spent. MonsterInstanceData
// holds either a single stat block or one per instance.
//
// Usage:
//
//	hunt, err := engine.StartHunt(uuid.NewString(), engine.HuntParams{
//		QuarryName:  "White Lion",
//		QuarryLevel: 1,
//		Survivors:   []string{a, b, c, d},
//	})
//	if err != nil {
//		return err
//	}
//
//	move, err := hunt.Move(6, 6)
//	// move.Note == "Survivors moved.", move.Overlap == true
//	outcome, err := hunt.Resolve()
//
// Errors:
//
// Rule violations are *ValidationError values whose Kind is one of the Err*
// sentinels, so callers match them with errors.Is and report them with KindOf.
package engine
