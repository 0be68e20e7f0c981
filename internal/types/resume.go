package types

// ResumePosition is one work-history entry extracted from a resume.
type ResumePosition struct {
	PositionName string `json:"position_name"`
	CompanyName  string `json:"company_name"`
	JobDetails   string `json:"job_details"`
	Skills       string `json:"skills"`
}

// ResumeEducation is one education entry extracted from a resume.
type ResumeEducation struct {
	QualificationName string `json:"qualification_name"`
	InstituteName     string `json:"institute_name"`
	YearCompleted     string `json:"year_completed"`
}

// ResumeParseResult is the structured extraction of one resume.
type ResumeParseResult struct {
	CandidateName           string            `json:"candidate_name"`
	CandidateEmail          string            `json:"candidate_email"`
	CandidatePhone          string            `json:"candidate_phone"`
	CandidateAddress        string            `json:"candidate_address"`
	Positions               []ResumePosition  `json:"positions"`
	EducationQualifications []ResumeEducation `json:"education_qualifications"`
	ResumeText              string            `json:"resume_text,omitempty"`
}

// ResumeParseResponse wraps the parse-resume endpoint result.
type ResumeParseResponse struct {
	Result ResumeParseResult `json:"result"`
}

// PendingFile is the one-shot payload handed across a navigation boundary:
// a file staged on one page and consumed exactly once by the importer.
type PendingFile struct {
	Name     string `json:"name"`
	Base64   string `json:"base64"`
	Type     string `json:"type"`
	IsResume bool   `json:"isResume"`
}
