package recruiting

import (
	"strings"
	"time"
)

type Job struct {
	ID                  int64      `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements"`
	Responsibilities    string     `json:"responsibilities"`
	Department          string     `json:"department"`
	Location            string     `json:"location"`
	EmploymentType      string     `json:"employmentType"`
	WorkLocation        string     `json:"workLocation"`
	ExperienceLevel     string     `json:"experienceLevel"`
	SalaryMin           *int       `json:"salaryMin"`
	SalaryMax           *int       `json:"salaryMax"`
	Status              string     `json:"status"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	PostedBy            *int64     `json:"postedBy"`
	AIScore             *int       `json:"aiScore"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type JobInput struct {
	Title               string
	Description         string
	Requirements        string
	Responsibilities    string
	Department          string
	Location            string
	EmploymentType      string
	WorkLocation        string
	ExperienceLevel     string
	SalaryMin           *int
	SalaryMax           *int
	Status              string
	ApplicationDeadline *time.Time
	PostedBy            *int64
}

type JobPatch struct {
	Title               *string
	Description         *string
	Requirements        *string
	Responsibilities    *string
	Department          *string
	Location            *string
	EmploymentType      *string
	WorkLocation        *string
	ExperienceLevel     *string
	SalaryMin           *int
	SalaryMax           *int
	Status              *string
	ApplicationDeadline *time.Time
	AIScore             *int
}

type JobFilter struct {
	Status     string
	Department string
	Limit      int
}

type JobTemplate struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Title            string    `json:"title"`
	Department       string    `json:"department"`
	Description      string    `json:"description"`
	Requirements     string    `json:"requirements"`
	Responsibilities string    `json:"responsibilities"`
	EmploymentType   string    `json:"employmentType"`
	ExperienceLevel  string    `json:"experienceLevel"`
	Skills           []string  `json:"skills"`
	Benefits         []string  `json:"benefits"`
	CreatedBy        *int64    `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type JobTemplateInput struct {
	Name             string
	Title            string
	Department       string
	Description      string
	Requirements     string
	Responsibilities string
	EmploymentType   string
	ExperienceLevel  string
	Skills           []string
	Benefits         []string
	CreatedBy        *int64
}

type JobTemplatePatch struct {
	Name             *string
	Title            *string
	Department       *string
	Description      *string
	Requirements     *string
	Responsibilities *string
	EmploymentType   *string
	ExperienceLevel  *string
	Skills           *[]string
	Benefits         *[]string
}

type JobTemplateFilter struct {
	Department string
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        *int   `json:"year"`
}

type Candidate struct {
	ID              int64       `json:"id"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Email           string      `json:"email"`
	Phone           *string     `json:"phone"`
	Location        *string     `json:"location"`
	CurrentPosition *string     `json:"currentPosition"`
	CurrentCompany  *string     `json:"currentCompany"`
	Experience      *string     `json:"experience"`
	Skills          []string    `json:"skills"`
	Education       []Education `json:"education"`
	ResumeURL       *string     `json:"resumeUrl"`
	LinkedInURL     *string     `json:"linkedinUrl"`
	PortfolioURL    *string     `json:"portfolioUrl"`
	Status          string      `json:"status"`
	Source          string      `json:"source"`
	Notes           *string     `json:"notes"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (c Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type CandidateInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           *string
	Location        *string
	CurrentPosition *string
	CurrentCompany  *string
	Experience      *string
	Skills          []string
	Education       []Education
	ResumeURL       *string
	LinkedInURL     *string
	PortfolioURL    *string
	Status          string
	Source          string
	Notes           *string
}

type CandidatePatch struct {
	FirstName       *string
	LastName        *string
	Email           *string
	Phone           *string
	Location        *string
	CurrentPosition *string
	CurrentCompany  *string
	Experience      *string
	Skills          *[]string
	Education       *[]Education
	ResumeURL       *string
	LinkedInURL     *string
	PortfolioURL    *string
	Status          *string
	Source          *string
	Notes           *string
}

// CandidateFilter.Skills matches candidates holding every listed skill.
type CandidateFilter struct {
	Status     string
	Experience string
	Skills     []string
}

type Application struct {
	ID           int64     `json:"id"`
	JobID        int64     `json:"jobId"`
	CandidateID  int64     `json:"candidateId"`
	Status       string    `json:"status"`
	CoverLetter  *string   `json:"coverLetter"`
	AIMatchScore *int      `json:"aiMatchScore"`
	Notes        *string   `json:"notes"`
	AppliedAt    time.Time `json:"appliedAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ApplicationInput struct {
	JobID        int64
	CandidateID  int64
	Status       string
	CoverLetter  *string
	AIMatchScore *int
	Notes        *string
}

type ApplicationPatch struct {
	Status       *string
	CoverLetter  *string
	AIMatchScore *int
	Notes        *string
}

type ApplicationFilter struct {
	JobID       int64
	CandidateID int64
	Status      string
}

type Interview struct {
	ID              int64     `json:"id"`
	ApplicationID   int64     `json:"applicationId"`
	InterviewerID   int64     `json:"interviewerId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"duration"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Location        *string   `json:"location"`
	MeetingLink     *string   `json:"meetingLink"`
	Rating          *int      `json:"rating"`
	Recommendation  *string   `json:"recommendation"`
	Feedback        *string   `json:"feedback"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type InterviewInput struct {
	ApplicationID   int64
	InterviewerID   int64
	ScheduledAt     time.Time
	DurationMinutes int
	Type            string
	Status          string
	Location        *string
	MeetingLink     *string
	Notes           *string
}

type InterviewPatch struct {
	InterviewerID   *int64
	ScheduledAt     *time.Time
	DurationMinutes *int
	Type            *string
	Status          *string
	Location        *string
	MeetingLink     *string
	Rating          *int
	Recommendation  *string
	Feedback        *string
	Notes           *string
}

// InterviewFilter.Date selects the whole calendar day containing it.
type InterviewFilter struct {
	Date          *time.Time
	InterviewerID int64
	Status        string
	ApplicationID int64
}
