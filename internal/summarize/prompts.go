package summarize

// summaryPrompt asks the model for full meeting notes in markdown. The
// transcript text is appended after the prompt body.
const summaryPrompt = `You are an AI assistant that creates concise meeting summaries. Analyze the following meeting transcription and provide:

1. **Meeting Summary**: A brief 2-3 sentence overview of the meeting
2. **Key Discussion Points**: Bullet points of main topics discussed
3. **Action Items**: Specific tasks or follow-ups identified (if any)
4. **Decisions Made**: Key decisions or conclusions reached (if any)
5. **Participants**: List any identifiable participants or speakers (if mentioned)

Transcription:
%s

Please format your response in markdown.`

// actionItemsPrompt asks the model for a standalone action-item checklist.
const actionItemsPrompt = `Extract all action items and tasks from this meeting transcription. For each action item, identify:
- The task/action
- Who is responsible (if mentioned)
- Any deadlines or timeframes (if mentioned)

Transcription:
%s

Format as a markdown checklist with details.`
