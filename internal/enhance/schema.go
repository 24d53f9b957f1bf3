package enhance

import "github.com/google/generative-ai-go/genai"

// Response schemas handed to the model so structured output matches the
// contracts in internal/schemas byte for byte. Every field the contract
// expects is marked required; response validation still runs after the
// call because the model is not trusted to honor the schema.

func workExperienceItemSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"jobTitle":  {Type: genai.TypeString},
			"company":   {Type: genai.TypeString},
			"startDate": {Type: genai.TypeString},
			"endDate":   {Type: genai.TypeString},
			"description": {
				Type:        genai.TypeString,
				Description: "Rewritten description using strong action verbs and quantified achievements. A single string, each point starting with '- ' and separated by a newline.",
			},
		},
		Required: []string{"jobTitle", "company", "startDate", "endDate", "description"},
	}
}

func enhancementSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A concise, impactful professional summary of 3-4 sentences.",
			},
			"workExperience": {
				Type:  genai.TypeArray,
				Items: workExperienceItemSchema(),
			},
			"skills": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "An organized list of the user's skills.",
			},
		},
		Required: []string{"summary", "workExperience", "skills"},
	}
}

func importSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"personalDetails": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"fullName": {Type: genai.TypeString, Description: "Candidate's full name."},
					"jobTitle": {Type: genai.TypeString, Description: "Current or desired job title."},
					"email":    {Type: genai.TypeString},
					"phone":    {Type: genai.TypeString},
					"address":  {Type: genai.TypeString, Description: "Physical address (city, state)."},
					"linkedin": {Type: genai.TypeString, Description: "LinkedIn profile URL."},
				},
				Required: []string{"fullName", "email"},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A concise, impactful professional summary of 3-4 sentences, rewritten from the user's content.",
			},
			"workExperience": {
				Type:  genai.TypeArray,
				Items: workExperienceItemSchema(),
			},
			"education": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"degree":      {Type: genai.TypeString},
						"institution": {Type: genai.TypeString},
						"startDate":   {Type: genai.TypeString},
						"endDate":     {Type: genai.TypeString},
					},
					Required: []string{"degree", "institution"},
				},
			},
			"skills": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "An organized list of skills extracted from the resume.",
			},
		},
		Required: []string{"personalDetails", "summary", "workExperience", "education", "skills"},
	}
}
