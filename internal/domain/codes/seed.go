package codes

// Demo terminology sets. Production deployments replace these with the
// WHO ICD-10 API and the NLM SNOMED-CT browser API.

// ICD10Codes returns the built-in diagnostic code set.
func ICD10Codes() []ICD10Code {
	return []ICD10Code{
		{
			Code:        "I10",
			Description: "Essential (primary) hypertension",
			Category:    "Diseases of the circulatory system",
			Subcategory: "Hypertensive diseases",
			Includes:    []string{"High blood pressure", "Hypertension (arterial) (benign) (essential) (malignant)"},
			Excludes:    []string{"Hypertension with heart involvement (I11)", "Hypertension with kidney involvement (I12)"},
		},
		{
			Code:        "I11.9",
			Description: "Hypertensive heart disease without heart failure",
			Category:    "Diseases of the circulatory system",
			Subcategory: "Hypertensive diseases",
			Includes:    []string{"Hypertensive heart disease NOS"},
			Excludes:    []string{},
		},
		{
			Code:        "I21.0",
			Description: "Acute transmural myocardial infarction of anterior wall",
			Category:    "Diseases of the circulatory system",
			Subcategory: "Ischemic heart diseases",
			Includes:    []string{"Anterior (wall) MI", "Anteroapical MI", "Anterolateral MI"},
			Excludes:    []string{"Chronic MI (I25.2)"},
		},
		{
			Code:        "I50.9",
			Description: "Heart failure, unspecified",
			Category:    "Diseases of the circulatory system",
			Subcategory: "Heart failure",
			Includes:    []string{"Cardiac failure NOS", "Congestive heart failure NOS"},
			Excludes:    []string{},
		},
		{
			Code:        "E11.9",
			Description: "Type 2 diabetes mellitus without complications",
			Category:    "Endocrine, nutritional and metabolic diseases",
			Subcategory: "Diabetes mellitus",
			Includes:    []string{"Adult-onset diabetes NOS", "Non-insulin-dependent diabetes"},
			Excludes:    []string{"Type 1 diabetes (E10)"},
		},
		{
			Code:        "E11.65",
			Description: "Type 2 diabetes mellitus with hyperglycemia",
			Category:    "Endocrine, nutritional and metabolic diseases",
			Subcategory: "Diabetes mellitus",
			Includes:    []string{},
			Excludes:    []string{},
		},
		{
			Code:        "E78.0",
			Description: "Pure hypercholesterolemia",
			Category:    "Endocrine, nutritional and metabolic diseases",
			Subcategory: "Disorders of lipoprotein metabolism",
			Includes:    []string{"Familial hypercholesterolemia", "Fredrickson type IIa"},
			Excludes:    []string{},
		},
		{
			Code:        "J18.9",
			Description: "Pneumonia, unspecified organism",
			Category:    "Diseases of the respiratory system",
			Subcategory: "Pneumonia",
			Includes:    []string{"Community-acquired pneumonia NOS"},
			Excludes:    []string{"Aspiration pneumonia (J69)", "Pneumonia due to solids/liquids"},
		},
		{
			Code:        "J44.1",
			Description: "Chronic obstructive pulmonary disease with acute exacerbation",
			Category:    "Diseases of the respiratory system",
			Subcategory: "Chronic lower respiratory diseases",
			Includes:    []string{"COPD exacerbation"},
			Excludes:    []string{"Chronic bronchitis with acute exacerbation"},
		},
		{
			Code:        "J45.20",
			Description: "Mild intermittent asthma, uncomplicated",
			Category:    "Diseases of the respiratory system",
			Subcategory: "Asthma",
			Includes:    []string{},
			Excludes:    []string{},
		},
		{
			Code:        "F32.1",
			Description: "Major depressive disorder, single episode, moderate",
			Category:    "Mental, Behavioral and Neurodevelopmental disorders",
			Subcategory: "Mood disorders",
			Includes:    []string{},
			Excludes:    []string{"Recurrent depressive disorder (F33)"},
		},
		{
			Code:        "F41.1",
			Description: "Generalized anxiety disorder",
			Category:    "Mental, Behavioral and Neurodevelopmental disorders",
			Subcategory: "Anxiety disorders",
			Includes:    []string{"Anxiety neurosis", "Anxiety state"},
			Excludes:    []string{"Panic disorder (F41.0)"},
		},
		{
			Code:        "A41.9",
			Description: "Sepsis, unspecified organism",
			Category:    "Certain infectious and parasitic diseases",
			Subcategory: "Sepsis",
			Includes:    []string{"Septicemia NOS"},
			Excludes:    []string{"Sepsis due to specific organism"},
		},
		{
			Code:        "B34.9",
			Description: "Viral infection, unspecified",
			Category:    "Certain infectious and parasitic diseases",
			Subcategory: "Viral infection",
			Includes:    []string{"Viral disease NOS"},
			Excludes:    []string{},
		},
		{
			Code:        "C34.90",
			Description: "Malignant neoplasm of unspecified part of unspecified bronchus or lung",
			Category:    "Neoplasms",
			Subcategory: "Malignant neoplasms of respiratory organs",
			Includes:    []string{"Lung cancer NOS"},
			Excludes:    []string{},
		},
		{
			Code:        "C50.919",
			Description: "Malignant neoplasm of unspecified site of unspecified female breast",
			Category:    "Neoplasms",
			Subcategory: "Malignant neoplasms of breast",
			Includes:    []string{"Breast cancer NOS"},
			Excludes:    []string{},
		},
	}
}

// SNOMEDConcepts returns the built-in clinical terminology set.
func SNOMEDConcepts() []SNOMEDConcept {
	return []SNOMEDConcept{
		{
			ConceptID:    "38341003",
			Term:         "Hypertensive disorder, systemic arterial",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Hypertension", "High blood pressure", "HTN"},
		},
		{
			ConceptID:    "44054006",
			Term:         "Type 2 diabetes mellitus",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Type II diabetes", "T2DM", "Adult-onset diabetes", "Non-insulin dependent diabetes"},
		},
		{
			ConceptID:    "22298006",
			Term:         "Myocardial infarction",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"MI", "Heart attack", "Acute MI", "AMI"},
		},
		{
			ConceptID:    "233604007",
			Term:         "Pneumonia",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Lung infection", "Pulmonary infection"},
		},
		{
			ConceptID:    "84114007",
			Term:         "Heart failure",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Cardiac failure", "CHF", "Congestive heart failure"},
		},
		{
			ConceptID:    "35489007",
			Term:         "Depressive disorder",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Depression", "Major depression", "Clinical depression"},
		},
		{
			ConceptID:    "197480006",
			Term:         "Anxiety disorder",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Anxiety", "Anxiety state", "GAD"},
		},
		{
			ConceptID:    "13645005",
			Term:         "Chronic obstructive pulmonary disease",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"COPD", "Chronic airflow obstruction", "Chronic obstructive lung disease"},
		},
		{
			ConceptID:    "195967001",
			Term:         "Asthma",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Bronchial asthma", "Asthmatic"},
		},
		{
			ConceptID:    "91302008",
			Term:         "Sepsis",
			SemanticType: "Clinical Finding",
			Synonyms:     []string{"Septicemia", "Blood poisoning", "Systemic infection"},
		},
	}
}
