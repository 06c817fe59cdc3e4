package dialogue

import (
	"cmp"
	"slices"
	"strings"
)

// RecomputeMissing derives the authoritative missing-slot list from the
// model's declaration. Declared entries are kept; a required slot with no
// value is always added. The result is ordered target_person, gender, then
// slot priority, then lexically for names outside the schema.
func RecomputeMissing(slots Slots, declared []string) []string {
	out := make([]string, 0, len(declared)+len(RequiredSlots))
	seen := make(map[string]bool, len(declared)+len(RequiredSlots))

	for _, name := range declared {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, name := range RequiredSlots {
		if !slots.Has(name) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	slices.SortStableFunc(out, compareSlotNames)
	return out
}

func compareSlotNames(a, b string) int {
	if c := cmp.Compare(slotRank(a), slotRank(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func slotRank(name string) int {
	if i := slices.Index(slotPriority, name); i >= 0 {
		return i
	}
	return len(slotPriority)
}

// CanGenerate decides generation readiness. It is true when the user asked
// to generate and both required slots are filled, when the model declared
// readiness, or when both required slots are filled and nothing is missing.
func CanGenerate(cmds Commands, slots Slots, declared bool, missing []string) bool {
	required := slots.Has(SlotTargetPerson) && slots.Has(SlotGender)
	return (cmds.Generate && required) || declared || (required && len(missing) == 0)
}
