package ai

// System prompts and user prompt templates for the five inference
// calls. Every prompt demands a single JSON object so the model's
// json_object response format can be decoded directly.

const parseSystemPrompt = "You are an assistant that turns free-form text into a structured todo item. Respond with exactly one JSON object and nothing else."

const parsePromptTemplate = `Extract a todo item from the following input.

Input: %s

Respond with a JSON object with these keys:
- "title": short actionable title (max 255 characters), required
- "description": longer detail, or null if the input has none
- "priority": integer 1-5 (1 lowest, 5 most urgent), or null if unclear
- "category": one of Work, Personal, Learning, Health, Finance, Other, or null if unclear
- "estimated_time": estimated minutes to complete as a positive integer, or null if unclear

Only fill a field when the input supports it. Do not invent details.`

const prioritySystemPrompt = "You are a task prioritization expert. Respond with exactly one JSON object and nothing else."

const priorityPromptTemplate = `Recommend a priority for this todo.

Title: %s
Description: %s
Category: %s
Current priority: %d

Priority scale: 1=Very Low, 2=Low, 3=Medium, 4=High, 5=Critical.

Respond with a JSON object with these keys:
- "recommended_priority": integer 1-5
- "confidence": your confidence between 0.0 and 1.0
- "reasoning": one short sentence explaining the recommendation`

const categorySystemPrompt = "You are a task classification expert. Respond with exactly one JSON object and nothing else."

const categoryPromptTemplate = `Classify this todo into exactly one category.

Title: %s
Description: %s

Allowed categories: Work, Personal, Learning, Health, Finance, Other.

Respond with a JSON object with these keys:
- "category": one of the allowed categories
- "confidence": your confidence between 0.0 and 1.0
- "reasoning": one short sentence explaining the classification`

const timeSystemPrompt = "You are a time estimation expert. Respond with exactly one JSON object and nothing else."

const timePromptTemplate = `Estimate how long this todo will take.

Title: %s
Description: %s
Category: %s

Respond with a JSON object with these keys:
- "estimated_minutes": positive integer number of minutes
- "confidence": your confidence between 0.0 and 1.0
- "suggestion": one short tip for completing the task efficiently`

const batchSystemPrompt = "You are a productivity expert. Respond with exactly one JSON object and nothing else."

const batchPromptTemplate = `Analyze this list of todos and provide productivity insights:
workload balance, priority distribution, and one or two concrete
suggestions for what to tackle first.

Todos:
%s

Respond with a JSON object with one key:
- "analysis": your insights as plain text`
