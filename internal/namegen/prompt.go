package namegen

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/namepal/internal/dialogue"
)

const (
	unspecified    = "未指定"
	notProvided    = "未提供"
	defaultSubject = "用户"
)

const generationPrompt = `【名字生成任务】
你是专业的英文取名顾问。请根据下面的命名偏好，为%s推荐 5 个高度个性化的英文名。

【命名偏好】
- 起名对象: %s
- 性别: %s
- 使用场景: %s
- 中文名: %s
- 中文关联方式: %s（phonetic 音译 / semantic 含义 / both 两者 / none 不参考）
- 审美风格: %s
- 寓意偏好: %s
- 流行度偏好: %s（popular 热门 / avoid_popular 冷门 / mixed 混合）
- 实用性考虑: %s
- 其他补充: %s

【推荐要求】
1. 每个名字都要满足用户明确提出的条件
2. %s
3. 兼顾独特性与实用性，避免怪异或难以发音的名字
4. 给出有深度的分析，而不是泛泛的介绍
5. 重点说明名字与审美风格、寓意的契合度

【返回格式】
只返回如下结构的 JSON，不要有其他文字，recommendations 恰好包含 5 项，每个字段都要填写：
{
  "recommendations": [
    {
      "name": "英文名",
      "pronunciation": "发音指南，音标或音节拆分",
      "meaning": "名字含义，包括语源和文化背景",
      "style_tags": ["2-4 个风格标签"],
      "popularity": "流行度描述",
      "chinese_relation": "%s",
      "reason": "为什么这个名字适合用户"
    }
  ]
}`

// buildPrompt renders every slot into the generation prompt, substituting a
// placeholder for each unknown value.
func buildPrompt(s dialogue.Slots) string {
	chineseLine := "用户未提供中文名参考"
	relationHint := "未提供中文名"
	if name := text(s.ChineseNameInput, ""); name != "" {
		chineseLine = fmt.Sprintf("用户提供了中文名\"%s\"，请按%s的方式与之关联", name, text(s.ChineseReference, "音译和含义"))
		relationHint = fmt.Sprintf("与中文名「%s」的关联说明", name)
	}

	return fmt.Sprintf(generationPrompt,
		text(s.TargetPerson, defaultSubject),
		text(s.TargetPerson, unspecified),
		text(s.Gender, unspecified),
		text(s.Scenario, "日常生活/"+unspecified),
		text(s.ChineseNameInput, notProvided),
		text(s.ChineseReference, unspecified),
		tags(s.AestheticTags),
		tags(s.MeaningTags),
		text(s.PopularityPref, unspecified),
		text(s.PracticalPref, unspecified),
		text(s.AdditionalContext, "无"),
		chineseLine,
		relationHint,
	)
}

func text(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return strings.TrimSpace(*v)
}

func tags(t dialogue.Tags) string {
	if len(t) == 0 {
		return unspecified
	}
	return strings.Join(t, ", ")
}
