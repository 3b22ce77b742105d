// Package reference provides the monster reference datasets.
//
// The reference package handles:
//   - Loading monster datasets from YAML files
//   - Validating every dataset when it is loaded
//   - Lookup by name and level for seeding showdowns
//   - Writing new datasets to the reference directory
//
// Dataset Format:
//
// Each file describes one monster. A single monster lists one stat block per
// level; a multi-monster lists one block per instance:
//
//	name: White Lion
//	type: quarry
//	multiMonster: false
//	levels:
//	  1:
//	    movement: 6
//	    toughness: 8
//	    aiDeck: {basic: 7, advanced: 3}
//
// Available Datasets:
//
// The binary embeds White Lion, Screaming Antelope and Flower Knight
// (quarries), Butcher and Twin Wardens (nemeses). Files in the reference
// directory override embedded datasets with the same name.
//
// Usage:
//
//	catalog, err := reference.NewManager("reference", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	stats, err := catalog.LevelData("White Lion", 2)
package reference
