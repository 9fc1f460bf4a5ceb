package agent

import "strings"

// chatInput is the graph input the jockey supervisor expects.
type chatInput struct {
	ChatHistory []chatMessage `json:"chat_history"`
}

type chatMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// BuildInput constructs the run input for a question. The index id, when
// set, is prefixed to the question so the graph knows which video index to
// search.
func BuildInput(indexID, question string) any {
	return chatInput{
		ChatHistory: []chatMessage{{Type: "user", Content: chatContent(indexID, question)}},
	}
}

func chatContent(indexID, question string) string {
	question = strings.TrimSpace(question)
	indexID = strings.TrimSpace(indexID)
	if indexID == "" {
		return question
	}
	return indexID + " " + question
}
