package models

// Model_Response is the final text of a non-streaming completion.
type Model_Response struct {
	Text string `json:"text"`
}

// Model_Delta is one streamed chunk. Text is empty when the chunk carried no
// content.
type Model_Delta struct {
	Text string `json:"text"`
}
