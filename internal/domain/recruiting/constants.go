package recruiting

const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"

	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"

	WorkLocationOnsite = "onsite"
	WorkLocationRemote = "remote"
	WorkLocationHybrid = "hybrid"

	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceLead      = "lead"
	ExperienceExecutive = "executive"

	CandidateStatusNew          = "new"
	CandidateStatusReviewing    = "reviewing"
	CandidateStatusShortlisted  = "shortlisted"
	CandidateStatusInterviewing = "interviewing"
	CandidateStatusOffered      = "offered"
	CandidateStatusHired        = "hired"
	CandidateStatusRejected     = "rejected"

	SourceDirect   = "direct"
	SourceReferral = "referral"
	SourceLinkedIn = "linkedin"
	SourceJobBoard = "job_board"
	SourceAgency   = "agency"
	SourceWebsite  = "website"
	SourceOther    = "other"

	ApplicationStatusApplied      = "applied"
	ApplicationStatusScreening    = "screening"
	ApplicationStatusInterviewing = "interviewing"
	ApplicationStatusOffered      = "offered"
	ApplicationStatusHired        = "hired"
	ApplicationStatusRejected     = "rejected"

	InterviewTypePhone      = "phone"
	InterviewTypeVideo      = "video"
	InterviewTypeOnsite     = "on-site"
	InterviewTypeTechnical  = "technical"
	InterviewTypeBehavioral = "behavioral"

	InterviewStatusScheduled   = "scheduled"
	InterviewStatusInProgress  = "in_progress"
	InterviewStatusCompleted   = "completed"
	InterviewStatusCancelled   = "cancelled"
	InterviewStatusRescheduled = "rescheduled"

	RecommendationStrongHire   = "strong_hire"
	RecommendationHire         = "hire"
	RecommendationNoHire       = "no_hire"
	RecommendationStrongNoHire = "strong_no_hire"
)

var (
	JobStatuses         = []string{JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed}
	EmploymentTypes     = []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship}
	WorkLocations       = []string{WorkLocationOnsite, WorkLocationRemote, WorkLocationHybrid}
	ExperienceLevels    = []string{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive}
	CandidateStatuses   = []string{CandidateStatusNew, CandidateStatusReviewing, CandidateStatusShortlisted, CandidateStatusInterviewing, CandidateStatusOffered, CandidateStatusHired, CandidateStatusRejected}
	CandidateSources    = []string{SourceDirect, SourceReferral, SourceLinkedIn, SourceJobBoard, SourceAgency, SourceWebsite, SourceOther}
	ApplicationStatuses = []string{ApplicationStatusApplied, ApplicationStatusScreening, ApplicationStatusInterviewing, ApplicationStatusOffered, ApplicationStatusHired, ApplicationStatusRejected}
	InterviewTypes      = []string{InterviewTypePhone, InterviewTypeVideo, InterviewTypeOnsite, InterviewTypeTechnical, InterviewTypeBehavioral}
	InterviewStatuses   = []string{InterviewStatusScheduled, InterviewStatusInProgress, InterviewStatusCompleted, InterviewStatusCancelled, InterviewStatusRescheduled}
	Recommendations     = []string{RecommendationStrongHire, RecommendationHire, RecommendationNoHire, RecommendationStrongNoHire}
)
