package chat

// SuggestionGroup is a themed set of starter queries for the chat UI.
type SuggestionGroup struct {
	Category string   `json:"category"`
	Queries  []string `json:"queries"`
}

// Suggestions returns the starter query templates, grouped by theme.
func Suggestions() []SuggestionGroup {
	return []SuggestionGroup{
		{
			Category: "Treatment Guidelines",
			Queries: []string{
				"What are the first-line treatments for hypertension?",
				"What is the treatment algorithm for type 2 diabetes?",
				"How should community-acquired pneumonia be treated?",
				"What are the current guidelines for anticoagulation in atrial fibrillation?",
			},
		},
		{
			Category: "Drug Information",
			Queries: []string{
				"What are the common side effects of metformin?",
				"What is the mechanism of action of ACE inhibitors?",
				"What are the contraindications for aspirin use?",
				"How should warfarin dosing be adjusted?",
			},
		},
		{
			Category: "Clinical Presentation",
			Queries: []string{
				"What are the symptoms of acute myocardial infarction?",
				"How does diabetic ketoacidosis present clinically?",
				"What are the red flags for headache?",
				"What are the diagnostic criteria for sepsis?",
			},
		},
		{
			Category: "Differential Diagnosis",
			Queries: []string{
				"What is the differential diagnosis for chest pain?",
				"What causes elevated liver enzymes?",
				"What are the causes of acute kidney injury?",
				"What conditions cause generalized lymphadenopathy?",
			},
		},
	}
}
