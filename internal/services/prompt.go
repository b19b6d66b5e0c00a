package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchScoringPrompt creates the compatibility-scoring prompt. The
// output contract is a literal score:<integer> so the response survives
// tolerant pattern matching even when the model adds prose around it.
func (pb *PromptBuilder) BuildMatchScoringPrompt(resumeText, requirementText string) string {
	return fmt.Sprintf(`You are an expert technical recruiter scoring how well a candidate's resume matches a hiring requirement.

HIRING REQUIREMENT:
%s

CANDIDATE RESUME:
%s

Weigh relevant projects and hands-on experience above all other resume content (education, hobbies, formatting).

Score the compatibility on an integer scale from 0 to 10:
- 10: perfect match
- 7-9: strong match, meets most requirements
- 4-6: moderate match, some relevant experience
- 1-3: weak match
- 0: no match

Respond with exactly one line in the form score:<integer> and nothing else. Example: score:7`,
		requirementText, resumeText)
}
