package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCommands(t *testing.T) {
	tests := []struct {
		utterance string
		want      Commands
	}{
		{"重新开始", Commands{Reset: true}},
		{"算了，我们重来吧", Commands{Reset: true}},
		{"Let's start over", Commands{Reset: true}},
		{"RESET please", Commands{Reset: true}},
		{"我喜欢这个名字", Commands{}},
		{"帮我生成名字", Commands{Generate: true}},
		{"先推荐一些看看", Commands{Generate: true}},
		{"Generate names now", Commands{Generate: true}},
		{"show me the results", Commands{Generate: true}},
		{"换个风格吧", Commands{ChangeStyle: true}},
		{"I want a different style", Commands{ChangeStyle: true}},
		{"清空然后换一种风格，再生成名字", Commands{Reset: true, Generate: true, ChangeStyle: true}},
		{"", Commands{}},
		{"presetting the table", Commands{}},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCommands(tt.utterance))
		})
	}
}
