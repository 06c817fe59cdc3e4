package dialogue

import "regexp"

// Commands are the control intents found in a user utterance. They are
// independent of each other.
type Commands struct {
	Reset       bool
	Generate    bool
	ChangeStyle bool
}

var (
	resetPattern = regexp.MustCompile(`(?i)重新开始|重来|从头来|清空|重置|\b(?:start over|restart|reset)\b`)

	generatePattern = regexp.MustCompile(`(?i)生成名字|推荐名字|查看结果|展示结果|推荐一些|\bgenerate (?:the |some )?names?\b|\bshow (?:me )?(?:the )?(?:names|results)\b`)

	changeStylePattern = regexp.MustCompile(`(?i)换个风格|换种类型|换一种|不同风格|更改风格|修改风格|\bchange (?:the )?style\b|\bdifferent style\b`)
)

// DetectCommands scans the latest user utterance for control intents.
func DetectCommands(utterance string) Commands {
	return Commands{
		Reset:       resetPattern.MatchString(utterance),
		Generate:    generatePattern.MatchString(utterance),
		ChangeStyle: changeStylePattern.MatchString(utterance),
	}
}
