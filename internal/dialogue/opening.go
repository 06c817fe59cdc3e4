package dialogue

import "math/rand/v2"

// Opening is a greeting shown when a conversation has no history.
type Opening struct {
	Text         string
	QuickReplies []string
}

// RandomSource picks an index in [0, n). One source is shared by every
// request, so implementations must be safe for concurrent use. A bare
// *rand.Rand is not.
type RandomSource interface {
	IntN(n int) int
}

// GlobalRandom draws from the math/rand/v2 top-level generator, which is
// safe for concurrent use.
type GlobalRandom struct{}

func (GlobalRandom) IntN(n int) int { return rand.IntN(n) }

// Openings is the fixed pool of greeting variants.
var Openings = []Opening{
	{
		Text:         "给孩子或者自己取个英文名，有时候比写论文还难 😅 你现在是想帮谁起名字呢？",
		QuickReplies: []string{"给宝宝起名", "给朋友起名", "给自己起名", "给学生起名"},
	},
	{
		Text:         "你希望这个名字给人什么感觉？✨ 有寓意、有文化感，还是念出来就很顺耳的那种？",
		QuickReplies: []string{"有寓意的名字", "发音好听", "不要太常见", "像某部电影角色"},
	},
	{
		Text:         "名字选好了是加分神器，选不好可能一辈子都在纠正发音 🙈 你现在有点想法了吗？",
		QuickReplies: []string{"我有点想法", "不知道从哪开始", "先给我点灵感", "我想听听你的建议"},
	},
	{
		Text:         "如果你在为一个特别的人取名，我懂这份纠结 🫶 我们可以慢慢聊，一起找点灵感。",
		QuickReplies: []string{"好的，慢慢来", "我希望名字特别", "不希望撞名", "我想让名字有故事感", "先推荐几个名字吧"},
	},
	{
		Text:         "想找一个既特别又不出戏的英文名确实不容易，不过别有压力，我们一起慢慢来 🧠💡",
		QuickReplies: []string{"风格偏好", "跟中文名有关", "取名场景", "随便聊聊试试看"},
	},
}

// PickOpening selects one variant uniformly using rng. It returns -1 for an
// empty pool.
func PickOpening(pool []Opening, rng RandomSource) (int, Opening) {
	if len(pool) == 0 {
		return -1, Opening{}
	}
	i := rng.IntN(len(pool))
	return i, pool[i]
}
