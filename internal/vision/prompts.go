package vision

// systemPrompt frames the model as an activity analyst.
const systemPrompt = "You are an AI assistant that analyzes screenshots to understand user activity."

// screenAnalysisPrompt asks for a short factual summary of the screenshot.
const screenAnalysisPrompt = `Analyze this screenshot of the user's screen and provide a brief summary of what they're working on.
Focus on identifying:
1. The type of application or website being used
2. The specific task or content being worked on
3. Whether this appears to be productive work or a potential distraction
4. Any signs of progress or challenges

Be concise and factual in your analysis. Limit your response to 2-3 sentences.`
