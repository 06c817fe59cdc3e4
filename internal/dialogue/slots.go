// Package dialogue holds the slot-filling protocol shared by the chat and
// generation paths: the preference record, command detection, normalization
// of model output, the missing-slot backstop and recommendation extraction.
package dialogue

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	SlotTargetPerson      = "target_person"
	SlotGender            = "gender"
	SlotScenario          = "scenario"
	SlotChineseNameInput  = "chinese_name_input"
	SlotChineseReference  = "chinese_reference"
	SlotAestheticTags     = "aesthetic_tags"
	SlotMeaningTags       = "meaning_tags"
	SlotPopularityPref    = "popularity_pref"
	SlotPracticalPref     = "practical_pref"
	SlotAdditionalContext = "additional_context"
)

// RequiredSlots must be filled before generation is allowed without an
// explicit generate command.
var RequiredSlots = []string{SlotTargetPerson, SlotGender}

// slotPriority is the order missing slots are asked for.
var slotPriority = []string{
	SlotTargetPerson,
	SlotGender,
	SlotChineseNameInput,
	SlotChineseReference,
	SlotScenario,
	SlotAestheticTags,
	SlotMeaningTags,
	SlotPopularityPref,
	SlotPracticalPref,
	SlotAdditionalContext,
}

// AllSlotNames returns every slot name in priority order.
func AllSlotNames() []string {
	out := make([]string, len(slotPriority))
	copy(out, slotPriority)
	return out
}

// Slots is the accumulated naming preference record. Every field is always
// serialized; unknown values are null.
type Slots struct {
	TargetPerson      *string `json:"target_person"`
	Gender            *string `json:"gender"`
	Scenario          *string `json:"scenario"`
	ChineseNameInput  *string `json:"chinese_name_input"`
	ChineseReference  *string `json:"chinese_reference"`
	AestheticTags     Tags    `json:"aesthetic_tags"`
	MeaningTags       Tags    `json:"meaning_tags"`
	PopularityPref    *string `json:"popularity_pref"`
	PracticalPref     *string `json:"practical_pref"`
	AdditionalContext *string `json:"additional_context"`
}

// UnmarshalJSON reads each slot on its own. A slot holding an unusable value
// is left null instead of failing the whole record.
func (s *Slots) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("slots: %w", err)
	}

	*s = Slots{
		TargetPerson:      looseText(fields[SlotTargetPerson]),
		Gender:            looseText(fields[SlotGender]),
		Scenario:          looseText(fields[SlotScenario]),
		ChineseNameInput:  looseText(fields[SlotChineseNameInput]),
		ChineseReference:  looseText(fields[SlotChineseReference]),
		AestheticTags:     looseTags(fields[SlotAestheticTags]),
		MeaningTags:       looseTags(fields[SlotMeaningTags]),
		PopularityPref:    looseText(fields[SlotPopularityPref]),
		PracticalPref:     looseText(fields[SlotPracticalPref]),
		AdditionalContext: looseText(fields[SlotAdditionalContext]),
	}
	return nil
}

// looseText accepts a string, number or bool. Anything else reads as null.
func looseText(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		return &t
	case float64, bool:
		text := fmt.Sprint(t)
		return &text
	default:
		return nil
	}
}

func looseTags(raw json.RawMessage) Tags {
	if len(raw) == 0 {
		return nil
	}
	var t Tags
	if err := t.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return t
}

// Tags is an ordered list of free-text descriptors. It decodes from a JSON
// array, a single string or null.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = nil
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*t = nil
			return nil
		}
		*t = Tags{s}
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	out := make(Tags, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	*t = out
	return nil
}

// Has reports whether the named slot holds a usable value. Blank strings and
// empty lists count as unfilled.
func (s Slots) Has(name string) bool {
	switch name {
	case SlotTargetPerson:
		return filled(s.TargetPerson)
	case SlotGender:
		return filled(s.Gender)
	case SlotScenario:
		return filled(s.Scenario)
	case SlotChineseNameInput:
		return filled(s.ChineseNameInput)
	case SlotChineseReference:
		return filled(s.ChineseReference)
	case SlotAestheticTags:
		return len(s.AestheticTags) > 0
	case SlotMeaningTags:
		return len(s.MeaningTags) > 0
	case SlotPopularityPref:
		return filled(s.PopularityPref)
	case SlotPracticalPref:
		return filled(s.PracticalPref)
	case SlotAdditionalContext:
		return filled(s.AdditionalContext)
	default:
		return false
	}
}

// Normalize trims free text, nulls blank values and coerces enumeration
// fields onto their allowed values. Values outside an enumeration become null.
func (s Slots) Normalize() Slots {
	s.TargetPerson = cleanText(s.TargetPerson)
	s.Scenario = cleanText(s.Scenario)
	s.ChineseNameInput = cleanText(s.ChineseNameInput)
	s.PracticalPref = cleanText(s.PracticalPref)
	s.AdditionalContext = cleanText(s.AdditionalContext)

	s.Gender = cleanEnum(s.Gender, genderValues)
	s.ChineseReference = cleanEnum(s.ChineseReference, chineseReferenceValues)
	s.PopularityPref = cleanEnum(s.PopularityPref, popularityValues)

	s.AestheticTags = cleanTags(s.AestheticTags)
	s.MeaningTags = cleanTags(s.MeaningTags)
	return s
}

var genderValues = map[string]string{
	"male": "male", "m": "male", "boy": "male", "man": "male",
	"男": "male", "男孩": "male", "男性": "male", "男生": "male",
	"female": "female", "f": "female", "girl": "female", "woman": "female",
	"女": "female", "女孩": "female", "女性": "female", "女生": "female",
	"neutral": "neutral", "unisex": "neutral", "中性": "neutral",
}

var chineseReferenceValues = map[string]string{
	"phonetic": "phonetic", "音译": "phonetic", "发音": "phonetic",
	"semantic": "semantic", "含义": "semantic", "意思": "semantic",
	"none": "none", "不参考": "none",
	"both": "both", "两者": "both", "都参考": "both",
}

var popularityValues = map[string]string{
	"popular": "popular", "热门": "popular",
	"avoid_popular": "avoid_popular", "冷门": "avoid_popular", "unpopular": "avoid_popular",
	"mixed": "mixed", "混合": "mixed",
}

func filled(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func cleanText(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func cleanEnum(v *string, allowed map[string]string) *string {
	t := cleanText(v)
	if t == nil {
		return nil
	}
	canonical, ok := allowed[strings.ToLower(*t)]
	if !ok {
		return nil
	}
	return &canonical
}

func cleanTags(tags Tags) Tags {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make(Tags, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
