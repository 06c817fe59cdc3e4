package dialogue

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `{
	"answer": "好的，女儿的名字我们慢慢挑～",
	"quickReplies": ["优雅一点", "要有寓意"],
	"slots": {
		"target_person": "女儿",
		"gender": "female",
		"scenario": null,
		"chinese_name_input": "诗涵",
		"chinese_reference": "phonetic",
		"aesthetic_tags": ["优雅", "小众"],
		"meaning_tags": null,
		"popularity_pref": "avoid_popular",
		"practical_pref": null,
		"additional_context": null
	},
	"missing_slots": ["scenario", "meaning_tags"],
	"can_generate": true
}`

func TestNormalize_DirectRoundTrip(t *testing.T) {
	p, outcome := Normalize(wellFormed)
	assert.Equal(t, OutcomeDirect, outcome)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, wellFormed, string(out))
}

func TestNormalize_EmbeddedInProse(t *testing.T) {
	raw := "Sure! Here is the reply:\n```json\n" + wellFormed + "\n```\nHope that helps."
	p, outcome := Normalize(raw)
	assert.Equal(t, OutcomeEmbedded, outcome)
	assert.Equal(t, "女儿", *p.Slots.TargetPerson)
	assert.True(t, bool(p.CanGenerate))
	assert.Equal(t, []string{"scenario", "meaning_tags"}, p.MissingSlots)
}

func TestNormalize_NotJSON(t *testing.T) {
	p, outcome := Normalize("not json at all")
	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, "not json at all", p.Answer)
	assert.Equal(t, []string{"target_person", "gender"}, p.MissingSlots)
	assert.False(t, bool(p.CanGenerate))
	assert.Equal(t, FallbackQuickReplies, p.QuickReplies)
	assert.Equal(t, Slots{}, p.Slots)

	out, err := json.Marshal(p.Slots)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.Len(t, fields, 10)
	for name, v := range fields {
		assert.Nil(t, v, "slot %s should be null", name)
	}
}

func TestNormalize_TruncatedJSONFallsBack(t *testing.T) {
	raw := `{"answer": "我们先聊聊", "slots": {"target_person": "儿子"`
	p, outcome := Normalize(raw)
	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, raw, p.Answer)
}

func TestNormalize_FallbackTruncatesByRune(t *testing.T) {
	raw := strings.Repeat("名", 600)
	p, outcome := Normalize(raw)
	require.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, strings.Repeat("名", 500)+"...", p.Answer)
}

func TestNormalize_ExactlyLimitNotTruncated(t *testing.T) {
	raw := strings.Repeat("a", 500)
	p, _ := Normalize(raw)
	assert.Equal(t, raw, p.Answer)
}

func TestNormalize_TopLevelNonObject(t *testing.T) {
	_, outcome := Normalize(`null`)
	assert.Equal(t, OutcomeFallback, outcome)

	_, outcome = Normalize(`["a"]`)
	assert.Equal(t, OutcomeFallback, outcome)
}

func TestNormalize_LenientFields(t *testing.T) {
	raw := `{"answer":"ok","slots":{"aesthetic_tags":"优雅","meaning_tags":["希望", 7, null]},"can_generate":"true"}`
	p, outcome := Normalize(raw)
	require.Equal(t, OutcomeDirect, outcome)
	assert.Equal(t, Tags{"优雅"}, p.Slots.AestheticTags)
	assert.Equal(t, Tags{"希望", "7"}, p.Slots.MeaningTags)
	assert.True(t, bool(p.CanGenerate))
	assert.Nil(t, p.MissingSlots)
}

func TestNormalize_WrongTypedListsKeepTheRest(t *testing.T) {
	raw := `{"answer":"好的，女儿的名字","quickReplies":"优雅","slots":{"target_person":"女儿","gender":"female"},"missing_slots":"scenario","can_generate":false}`
	p, outcome := Normalize(raw)
	require.Equal(t, OutcomeDirect, outcome)

	assert.Equal(t, "好的，女儿的名字", p.Answer)
	assert.Equal(t, []string{"优雅"}, p.QuickReplies)
	assert.Equal(t, []string{"scenario"}, p.MissingSlots)
	require.NotNil(t, p.Slots.TargetPerson)
	assert.Equal(t, "女儿", *p.Slots.TargetPerson)
	require.NotNil(t, p.Slots.Gender)
	assert.Equal(t, "female", *p.Slots.Gender)
}

func TestNormalize_UnusableFieldsReadAsEmpty(t *testing.T) {
	raw := `{"answer":"ok","quickReplies":{"a":1},"slots":{"target_person":{"who":"me"},"gender":"male","scenario":42},"missing_slots":7}`
	p, outcome := Normalize(raw)
	require.Equal(t, OutcomeDirect, outcome)

	assert.Equal(t, "ok", p.Answer)
	assert.Nil(t, p.QuickReplies)
	assert.Nil(t, p.MissingSlots)
	assert.Nil(t, p.Slots.TargetPerson)
	require.NotNil(t, p.Slots.Gender)
	assert.Equal(t, "male", *p.Slots.Gender)
	require.NotNil(t, p.Slots.Scenario)
	assert.Equal(t, "42", *p.Slots.Scenario)
}

func TestNormalize_SlotsNotAnObject(t *testing.T) {
	p, outcome := Normalize(`{"answer":"ok","slots":"none"}`)
	require.Equal(t, OutcomeDirect, outcome)
	assert.Equal(t, "ok", p.Answer)
	assert.Equal(t, Slots{}, p.Slots)
}

func TestNormalize_MissingFieldsAreZero(t *testing.T) {
	p, outcome := Normalize(`{"answer":"hi"}`)
	require.Equal(t, OutcomeDirect, outcome)
	assert.Equal(t, "hi", p.Answer)
	assert.Nil(t, p.QuickReplies)
	assert.False(t, p.Slots.Has(SlotTargetPerson))
	assert.False(t, bool(p.CanGenerate))
}
