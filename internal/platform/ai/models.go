package ai

type JobBrief struct {
	Title            string
	Department       string
	Location         string
	EmploymentType   string
	WorkLocation     string
	ExperienceLevel  string
	Description      string
	Requirements     string
	Responsibilities string
	Skills           []string
	SalaryMin        *int
	SalaryMax        *int
}

type CandidateBrief struct {
	Name            string
	CurrentPosition string
	Experience      string
	Skills          []string
	Education       []Education
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        *int   `json:"year"`
}

// ResumeFields never has nil slices.
type ResumeFields struct {
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	CurrentPosition string      `json:"currentPosition"`
	Location        string      `json:"location"`
	Experience      string      `json:"experience"`
	Skills          []string    `json:"skills"`
	Education       []Education `json:"education"`
}

func EmptyResumeFields() ResumeFields {
	return ResumeFields{Skills: []string{}, Education: []Education{}}
}

// ResumeDocument is either extracted Text or the raw upload.
type ResumeDocument struct {
	Text     string
	Data     []byte
	MIMEType string
}
