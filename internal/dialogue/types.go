package dialogue

// ChatTurn is one entry of the client-held conversation history.
type ChatTurn struct {
	Role    string `json:"role"` // user | assistant | system
	Content string `json:"content"`
}

// Recommendation is a fully described name returned by the generation call.
type Recommendation struct {
	Name            string   `json:"name"`
	Pronunciation   string   `json:"pronunciation,omitempty"`
	Meaning         string   `json:"meaning"`
	StyleTags       Tags     `json:"style_tags"`
	Popularity      string   `json:"popularity,omitempty"`
	ChineseRelation string   `json:"chinese_relation,omitempty"`
	Reason          string   `json:"reason"`
}

// Suggestion is a name the chat model embedded in its prose answer.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
