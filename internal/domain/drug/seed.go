package drug

// CatalogVersion identifies the revision of the built-in drug catalog and
// alias table.
const CatalogVersion = "2025.2"

func strptr(s string) *string { return &s }

// Catalog returns the built-in drug reference data. In production this would
// be loaded from a licensed drug database; the built-in set covers the most
// commonly co-prescribed drug classes.
func Catalog() []Drug {
	return []Drug{
		{
			Name:        "lisinopril",
			GenericName: "lisinopril",
			BrandNames:  []string{"Prinivil", "Zestril"},
			DrugClass:   "ACE Inhibitor",
			Description: strptr("Angiotensin-converting enzyme (ACE) inhibitor for hypertension and heart failure"),
		},
		{
			Name:        "metformin",
			GenericName: "metformin hydrochloride",
			BrandNames:  []string{"Glucophage", "Fortamet", "Riomet"},
			DrugClass:   "Biguanide",
			Description: strptr("First-line treatment for type 2 diabetes mellitus"),
		},
		{
			Name:        "amlodipine",
			GenericName: "amlodipine besylate",
			BrandNames:  []string{"Norvasc"},
			DrugClass:   "Calcium Channel Blocker (DHP)",
			Description: strptr("Dihydropyridine calcium channel blocker for hypertension and angina"),
		},
		{
			Name:        "warfarin",
			GenericName: "warfarin sodium",
			BrandNames:  []string{"Coumadin", "Jantoven"},
			DrugClass:   "Anticoagulant",
			Description: strptr("Vitamin K antagonist anticoagulant for preventing blood clots"),
		},
		{
			Name:        "omeprazole",
			GenericName: "omeprazole",
			BrandNames:  []string{"Prilosec", "Losec"},
			DrugClass:   "Proton Pump Inhibitor",
			Description: strptr("PPI for GERD, peptic ulcers, and H. pylori eradication"),
		},
		{
			Name:        "sertraline",
			GenericName: "sertraline hydrochloride",
			BrandNames:  []string{"Zoloft"},
			DrugClass:   "SSRI",
			Description: strptr("Selective serotonin reuptake inhibitor for depression and anxiety"),
		},
		{
			Name:        "metoprolol",
			GenericName: "metoprolol succinate",
			BrandNames:  []string{"Lopressor", "Toprol-XL"},
			DrugClass:   "Beta Blocker",
			Description: strptr("Beta-1 selective blocker for hypertension, angina, and heart failure"),
		},
		{
			Name:        "atorvastatin",
			GenericName: "atorvastatin calcium",
			BrandNames:  []string{"Lipitor"},
			DrugClass:   "Statin",
			Description: strptr("HMG-CoA reductase inhibitor for hyperlipidemia"),
		},
		{
			Name:        "simvastatin",
			GenericName: "simvastatin",
			BrandNames:  []string{"Zocor"},
			DrugClass:   "Statin",
			Description: strptr("HMG-CoA reductase inhibitor metabolized by CYP3A4"),
		},
		{
			Name:        "ibuprofen",
			GenericName: "ibuprofen",
			BrandNames:  []string{"Advil", "Motrin"},
			DrugClass:   "NSAID",
			Description: strptr("Non-steroidal anti-inflammatory drug for pain and inflammation"),
		},
		{
			Name:        "aspirin",
			GenericName: "acetylsalicylic acid",
			BrandNames:  []string{"Bayer", "Ecotrin"},
			DrugClass:   "NSAID/Antiplatelet",
			Description: strptr("Analgesic, antipyretic, anti-inflammatory, and antiplatelet agent"),
		},
		{
			Name:        "losartan",
			GenericName: "losartan potassium",
			BrandNames:  []string{"Cozaar"},
			DrugClass:   "ARB",
			Description: strptr("Angiotensin II receptor blocker for hypertension"),
		},
		{
			Name:        "spironolactone",
			GenericName: "spironolactone",
			BrandNames:  []string{"Aldactone"},
			DrugClass:   "Potassium-Sparing Diuretic",
			Description: strptr("Aldosterone antagonist for heart failure and hypertension"),
		},
		{
			Name:        "clopidogrel",
			GenericName: "clopidogrel bisulfate",
			BrandNames:  []string{"Plavix"},
			DrugClass:   "Antiplatelet",
			Description: strptr("P2Y12 inhibitor for preventing cardiovascular events"),
		},
		{
			Name:        "pantoprazole",
			GenericName: "pantoprazole sodium",
			BrandNames:  []string{"Protonix"},
			DrugClass:   "Proton Pump Inhibitor",
			Description: strptr("PPI with less CYP2C19 interaction than omeprazole"),
		},
		{
			Name:        "phenelzine",
			GenericName: "phenelzine sulfate",
			BrandNames:  []string{"Nardil"},
			DrugClass:   "MAO Inhibitor",
			Description: strptr("Monoamine oxidase inhibitor for treatment-resistant depression"),
		},
		{
			Name:        "ciprofloxacin",
			GenericName: "ciprofloxacin hydrochloride",
			BrandNames:  []string{"Cipro"},
			DrugClass:   "Fluoroquinolone",
			Description: strptr("Broad-spectrum fluoroquinolone antibiotic"),
		},
		{
			Name:        "digoxin",
			GenericName: "digoxin",
			BrandNames:  []string{"Lanoxin"},
			DrugClass:   "Cardiac Glycoside",
			Description: strptr("Cardiac glycoside for heart failure and atrial fibrillation rate control"),
		},
		{
			Name:        "amiodarone",
			GenericName: "amiodarone hydrochloride",
			BrandNames:  []string{"Cordarone", "Pacerone"},
			DrugClass:   "Antiarrhythmic (Class III)",
			Description: strptr("Class III antiarrhythmic for ventricular and atrial arrhythmias"),
		},
		{
			Name:        "verapamil",
			GenericName: "verapamil hydrochloride",
			BrandNames:  []string{"Calan", "Verelan"},
			DrugClass:   "Calcium Channel Blocker (non-DHP)",
			Description: strptr("Non-dihydropyridine calcium channel blocker for hypertension and arrhythmias"),
		},
		{
			Name:        "iodinated contrast",
			GenericName: "iodinated contrast media",
			BrandNames:  []string{"Omnipaque", "Isovue"},
			DrugClass:   "Iodinated Contrast Agent",
			Description: strptr("Radiographic contrast media used in CT and angiography"),
		},
		{
			Name:        "iodixanol",
			GenericName: "iodixanol",
			BrandNames:  []string{"Visipaque"},
			DrugClass:   "Iodinated Contrast Agent",
			Description: strptr("Iso-osmolar iodinated contrast media for CT and angiography"),
		},
	}
}

// Fact is one interaction entry from the knowledge source.
type Fact struct {
	DrugA           string
	DrugB           string
	Severity        Severity
	Description     string
	Mechanism       string
	Management      string
	ClinicalEffects []string
	Source          string
}

// Facts returns the built-in interaction knowledge, each pair canonically
// ordered.
func Facts() []Fact {
	return []Fact{
		{
			DrugA:           "lisinopril",
			DrugB:           "spironolactone",
			Severity:        SeveritySevere,
			Description:     "Risk of hyperkalemia (elevated potassium levels)",
			Mechanism:       "Both drugs increase potassium retention",
			Management:      "Monitor potassium levels closely. Consider alternative diuretic.",
			ClinicalEffects: []string{"Hyperkalemia", "Cardiac arrhythmias", "Muscle weakness"},
			Source:          "UpToDate Drug Interactions",
		},
		{
			DrugA:           "ibuprofen",
			DrugB:           "warfarin",
			Severity:        SeveritySevere,
			Description:     "Increased risk of gastrointestinal bleeding",
			Mechanism:       "NSAIDs inhibit platelet function and may cause GI ulceration",
			Management:      "Avoid combination if possible. Use acetaminophen instead.",
			ClinicalEffects: []string{"GI bleeding", "Prolonged INR", "Bruising"},
			Source:          "Clinical Pharmacology Database",
		},
		{
			DrugA:           "iodinated contrast",
			DrugB:           "metformin",
			Severity:        SeveritySevere,
			Description:     "Risk of lactic acidosis, especially in renal impairment",
			Mechanism:       "Contrast can cause acute kidney injury, impairing metformin clearance",
			Management:      "Hold metformin 48 hours before and after contrast. Check renal function.",
			ClinicalEffects: []string{"Lactic acidosis", "Acute kidney injury"},
			Source:          "ACR Manual on Contrast Media",
		},
		{
			DrugA:           "phenelzine",
			DrugB:           "sertraline",
			Severity:        SeverityContraindicated,
			Description:     "Risk of serotonin syndrome - potentially fatal",
			Mechanism:       "Combined serotonergic effects lead to excessive serotonin",
			Management:      "Do not combine. Allow 2-week washout between medications.",
			ClinicalEffects: []string{"Serotonin syndrome", "Hyperthermia", "Seizures", "Death"},
			Source:          "FDA Drug Safety Communication",
		},
		{
			DrugA:           "grapefruit",
			DrugB:           "simvastatin",
			Severity:        SeverityModerate,
			Description:     "Increased statin levels, risk of myopathy",
			Mechanism:       "Grapefruit inhibits CYP3A4, reducing statin metabolism",
			Management:      "Avoid grapefruit or use statin not affected by CYP3A4",
			ClinicalEffects: []string{"Myopathy", "Rhabdomyolysis", "Elevated CK"},
			Source:          "FDA Drug Label",
		},
		{
			DrugA:           "ciprofloxacin",
			DrugB:           "ibuprofen",
			Severity:        SeverityModerate,
			Description:     "Increased risk of CNS stimulation and seizures",
			Mechanism:       "Combined inhibition of GABA receptors",
			Management:      "Use with caution. Monitor for CNS symptoms.",
			ClinicalEffects: []string{"Seizures", "Confusion", "Tremors"},
			Source:          "Lexicomp Drug Interactions",
		},
		{
			DrugA:           "amiodarone",
			DrugB:           "digoxin",
			Severity:        SeveritySevere,
			Description:     "Increased digoxin levels, risk of toxicity",
			Mechanism:       "Amiodarone inhibits P-glycoprotein and renal clearance",
			Management:      "Reduce digoxin dose by 50%. Monitor levels closely.",
			ClinicalEffects: []string{"Digoxin toxicity", "Arrhythmias", "Nausea", "Visual changes"},
			Source:          "Clinical Pharmacology Database",
		},
		{
			DrugA:           "clopidogrel",
			DrugB:           "omeprazole",
			Severity:        SeverityModerate,
			Description:     "Reduced clopidogrel efficacy",
			Mechanism:       "Omeprazole inhibits CYP2C19, reducing active metabolite formation",
			Management:      "Consider pantoprazole or H2 blocker instead",
			ClinicalEffects: []string{"Reduced antiplatelet effect", "Increased cardiovascular events"},
			Source:          "FDA Drug Safety Communication",
		},
		{
			DrugA:           "metoprolol",
			DrugB:           "verapamil",
			Severity:        SeveritySevere,
			Description:     "Risk of severe bradycardia and heart block",
			Mechanism:       "Combined negative chronotropic and dromotropic effects",
			Management:      "Avoid combination or monitor closely with ECG",
			ClinicalEffects: []string{"Bradycardia", "Heart block", "Hypotension", "Heart failure"},
			Source:          "UpToDate Drug Interactions",
		},
		{
			DrugA:           "aspirin",
			DrugB:           "ibuprofen",
			Severity:        SeverityModerate,
			Description:     "Ibuprofen may reduce cardioprotective effect of aspirin",
			Mechanism:       "Competitive binding to COX-1 active site",
			Management:      "Take aspirin 30 min before ibuprofen, or use different NSAID timing",
			ClinicalEffects: []string{"Reduced antiplatelet effect", "GI bleeding risk"},
			Source:          "FDA Science Paper",
		},
	}
}
