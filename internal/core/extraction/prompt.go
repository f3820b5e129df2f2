package extraction

// DefaultPrompt is the triplet-extraction instruction template. The single
// %s placeholder receives the chunk text.
const DefaultPrompt = `You are an expert biomedical knowledge graph constructor.
Your task is to read the following chunk of text and extract knowledge in the form of subject-relation-object triplets.

Guidelines:
- Capture meaningful scientific/clinical facts, not formatting or filler text.
- The text may contain information about using a device or procedure, this is not filler text.
- Subjects and objects should be specific entities (e.g., "Complex sleep apnea", "Obstructive apnea", "Electrocardiogram-based analysis").
- Relations should be verbs or verb phrases that clearly describe the connection (e.g., "is defined as", "is associated with", "is caused by", "is measured by", "is improved with").
- Keep entities normalized and concise (avoid unnecessary adjectives unless medically relevant, e.g., "narrow spectral band e-LFC").
- If numerical or threshold values are explicitly stated, include them as objects (e.g., "Central apnea index" - ">= 5 per hour").
- Ignore disclaimers, references, or funding acknowledgments.

The output should only be a valid JSON array formatted as follows, no other text:
[
    {
        "subject": "...",
        "relation": "...",
        "object": "..."
    },
    ...
]

Here is the text chunk, follow all guidelines above exactly:
<<<%s>>>`
