package assistant

const titlePrompt = `Generate a concise, meaningful title for this journal entry.
The title should capture the essence or main theme of the entry.

Journal Entry: %s

Provide only the title, nothing else. Keep it under 10 words.`

const moodPrompt = `Analyze the emotional tone and mood of the following journal entry.

Journal Entry: %s

Format your response as:
Mood: [one word: happy, sad, anxious, peaceful, etc.]
Themes: [comma-separated list]
Explanation: [1-2 sentences]`

const tagPrompt = `Extract relevant tags from this journal entry. Focus on topics,
activities, emotions, and people or places mentioned.

Journal Entry: %s

Provide 3-5 relevant tags, separated by commas. Use lowercase, single
words or short phrases.`

const insightPrompt = `As a thoughtful journaling assistant, analyze this journal entry
and provide insights.

Journal Entry: %s
Date: %s
Mood: %s

Cover key themes, personal growth observations, suggestions for
reflection and any emotional patterns. Be supportive and encouraging.`

const analysisPrompt = `Analyze the emotional patterns in these journal entries over time.

Entries:
%s

Please identify:
1. Recurring emotional themes
2. Mood trends and patterns
3. Triggers or situations that affect mood
4. Positive and negative patterns
5. Suggestions for emotional well-being

Provide a structured analysis focusing on patterns and insights.`

const summaryPrompt = `Create a thoughtful weekly summary of these journal entries.

Entries:
%s

Include:
1. Key highlights and achievements
2. Challenges faced and how they were handled
3. Emotional journey throughout the week
4. Personal growth and insights
5. Goals and intentions for the coming week

Write in a warm, supportive tone that celebrates progress and encourages
continued reflection.`

const chatSystemPrompt = `You are a supportive journaling assistant. Help the user explore
their thoughts and feelings, and ask thoughtful questions that encourage
deeper reflection. Respond as a caring, non-judgmental friend.`

// Prompt is a canned writing prompt shown before a new entry.
type Prompt struct {
	Type        string   `json:"prompt_type"`
	Text        string   `json:"prompt_text"`
	Suggestions []string `json:"suggestions"`
}

var journalPrompts = map[string]Prompt{
	"daily": {
		Type: "daily",
		Text: "How was your day today? What were the highlights and challenges?",
		Suggestions: []string{
			"What made you smile today?",
			"What was the most challenging part of your day?",
			"What did you learn today?",
			"How did you feel overall today?",
		},
	},
	"reflection": {
		Type: "reflection",
		Text: "Take a moment to reflect on your recent experiences. What patterns do you notice?",
		Suggestions: []string{
			"What recurring themes have you noticed lately?",
			"How have you grown recently?",
			"What would you like to change?",
			"What are you grateful for?",
		},
	},
	"gratitude": {
		Type: "gratitude",
		Text: "Write about what you're grateful for today.",
		Suggestions: []string{
			"What people are you grateful for?",
			"What experiences brought you joy?",
			"What simple pleasures did you enjoy?",
			"What opportunities are you thankful for?",
		},
	},
	"goal": {
		Type: "goal",
		Text: "Reflect on your goals and progress. What steps are you taking?",
		Suggestions: []string{
			"What goals are you working towards?",
			"What progress have you made recently?",
			"What obstacles are you facing?",
			"What's your next step?",
		},
	},
	"freeform": {
		Type: "freeform",
		Text: "Write freely about whatever is on your mind.",
		Suggestions: []string{
			"What's weighing on your mind?",
			"What are you excited about?",
			"What questions do you have?",
			"What would you like to explore?",
		},
	},
}

// PromptFor returns the canned prompt for the given type, falling back
// to the daily prompt for unknown types.
func PromptFor(promptType string) Prompt {
	if p, ok := journalPrompts[promptType]; ok {
		return p
	}
	return journalPrompts["daily"]
}

// PromptTypes lists the known prompt types.
func PromptTypes() []string {
	return []string{"daily", "reflection", "gratitude", "goal", "freeform"}
}
