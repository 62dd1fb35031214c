package memstore

import (
	"context"
	"slices"

	"hrflow/internal/domain/recruiting"
	"hrflow/internal/platform/db"
)

var _ recruiting.StoreAPI = (*Store)(nil)

func (s *Store) ListJobs(_ context.Context, filter recruiting.JobFilter) ([]recruiting.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListJobs"); err != nil {
		return nil, err
	}
	out := []recruiting.Job{}
	for _, id := range sortedKeys(s.jobs, true) {
		job := s.jobs[id]
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.Department != "" && job.Department != filter.Department {
			continue
		}
		out = append(out, job)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) GetJob(_ context.Context, id int64) (recruiting.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetJob"); err != nil {
		return recruiting.Job{}, err
	}
	job, ok := s.jobs[id]
	if !ok {
		return recruiting.Job{}, db.ErrNotFound
	}
	return job, nil
}

func (s *Store) CreateJob(_ context.Context, in recruiting.JobInput) (recruiting.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateJob"); err != nil {
		return recruiting.Job{}, err
	}
	now := s.now()
	job := recruiting.Job{
		ID:                  s.nextID(),
		Title:               in.Title,
		Description:         in.Description,
		Requirements:        in.Requirements,
		Responsibilities:    in.Responsibilities,
		Department:          in.Department,
		Location:            in.Location,
		EmploymentType:      in.EmploymentType,
		WorkLocation:        in.WorkLocation,
		ExperienceLevel:     in.ExperienceLevel,
		SalaryMin:           in.SalaryMin,
		SalaryMax:           in.SalaryMax,
		Status:              in.Status,
		ApplicationDeadline: in.ApplicationDeadline,
		PostedBy:            in.PostedBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	s.jobs[job.ID] = job
	return job, nil
}

func (s *Store) UpdateJob(_ context.Context, id int64, patch recruiting.JobPatch) (recruiting.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateJob"); err != nil {
		return recruiting.Job{}, err
	}
	job, ok := s.jobs[id]
	if !ok {
		return recruiting.Job{}, db.ErrNotFound
	}
	set(&job.Title, patch.Title)
	set(&job.Description, patch.Description)
	set(&job.Requirements, patch.Requirements)
	set(&job.Responsibilities, patch.Responsibilities)
	set(&job.Department, patch.Department)
	set(&job.Location, patch.Location)
	set(&job.EmploymentType, patch.EmploymentType)
	set(&job.WorkLocation, patch.WorkLocation)
	set(&job.ExperienceLevel, patch.ExperienceLevel)
	setPtr(&job.SalaryMin, patch.SalaryMin)
	setPtr(&job.SalaryMax, patch.SalaryMax)
	set(&job.Status, patch.Status)
	setPtr(&job.ApplicationDeadline, patch.ApplicationDeadline)
	setPtr(&job.AIScore, patch.AIScore)
	job.UpdatedAt = s.now()
	s.jobs[id] = job
	return job, nil
}

func (s *Store) DeleteJob(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteJob"); err != nil {
		return err
	}
	if _, ok := s.jobs[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.jobs, id)
	for appID, app := range s.apps {
		if app.JobID == id {
			s.deleteApplication(appID)
		}
	}
	return nil
}

func (s *Store) ListJobTemplates(_ context.Context, filter recruiting.JobTemplateFilter) ([]recruiting.JobTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListJobTemplates"); err != nil {
		return nil, err
	}
	out := []recruiting.JobTemplate{}
	for _, id := range sortedKeys(s.templates, false) {
		tmpl := s.templates[id]
		if filter.Department != "" && tmpl.Department != filter.Department {
			continue
		}
		out = append(out, tmpl)
	}
	slices.SortStableFunc(out, func(a, b recruiting.JobTemplate) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *Store) GetJobTemplate(_ context.Context, id int64) (recruiting.JobTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetJobTemplate"); err != nil {
		return recruiting.JobTemplate{}, err
	}
	tmpl, ok := s.templates[id]
	if !ok {
		return recruiting.JobTemplate{}, db.ErrNotFound
	}
	return tmpl, nil
}

func (s *Store) CreateJobTemplate(_ context.Context, in recruiting.JobTemplateInput) (recruiting.JobTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateJobTemplate"); err != nil {
		return recruiting.JobTemplate{}, err
	}
	for _, existing := range s.templates {
		if existing.Name == in.Name {
			return recruiting.JobTemplate{}, db.ErrDuplicate
		}
	}
	now := s.now()
	tmpl := recruiting.JobTemplate{
		ID:               s.nextID(),
		Name:             in.Name,
		Title:            in.Title,
		Department:       in.Department,
		Description:      in.Description,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		EmploymentType:   in.EmploymentType,
		ExperienceLevel:  in.ExperienceLevel,
		Skills:           cloneStrings(in.Skills),
		Benefits:         cloneStrings(in.Benefits),
		CreatedBy:        in.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.templates[tmpl.ID] = tmpl
	return tmpl, nil
}

func (s *Store) UpdateJobTemplate(_ context.Context, id int64, patch recruiting.JobTemplatePatch) (recruiting.JobTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateJobTemplate"); err != nil {
		return recruiting.JobTemplate{}, err
	}
	tmpl, ok := s.templates[id]
	if !ok {
		return recruiting.JobTemplate{}, db.ErrNotFound
	}
	set(&tmpl.Name, patch.Name)
	set(&tmpl.Title, patch.Title)
	set(&tmpl.Department, patch.Department)
	set(&tmpl.Description, patch.Description)
	set(&tmpl.Requirements, patch.Requirements)
	set(&tmpl.Responsibilities, patch.Responsibilities)
	set(&tmpl.EmploymentType, patch.EmploymentType)
	set(&tmpl.ExperienceLevel, patch.ExperienceLevel)
	if patch.Skills != nil {
		tmpl.Skills = cloneStrings(*patch.Skills)
	}
	if patch.Benefits != nil {
		tmpl.Benefits = cloneStrings(*patch.Benefits)
	}
	tmpl.UpdatedAt = s.now()
	s.templates[id] = tmpl
	return tmpl, nil
}

func (s *Store) DeleteJobTemplate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteJobTemplate"); err != nil {
		return err
	}
	if _, ok := s.templates[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

func (s *Store) ListCandidates(_ context.Context, filter recruiting.CandidateFilter) ([]recruiting.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListCandidates"); err != nil {
		return nil, err
	}
	out := []recruiting.Candidate{}
	for _, id := range sortedKeys(s.cands, true) {
		c := s.cands[id]
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Experience != "" && (c.Experience == nil || *c.Experience != filter.Experience) {
			continue
		}
		if !hasAll(c.Skills, filter.Skills) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func hasAll(have, want []string) bool {
	for _, skill := range want {
		if !slices.Contains(have, skill) {
			return false
		}
	}
	return true
}

func (s *Store) GetCandidate(_ context.Context, id int64) (recruiting.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetCandidate"); err != nil {
		return recruiting.Candidate{}, err
	}
	c, ok := s.cands[id]
	if !ok {
		return recruiting.Candidate{}, db.ErrNotFound
	}
	return c, nil
}

func (s *Store) CreateCandidate(_ context.Context, in recruiting.CandidateInput) (recruiting.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateCandidate"); err != nil {
		return recruiting.Candidate{}, err
	}
	for _, existing := range s.cands {
		if existing.Email == in.Email {
			return recruiting.Candidate{}, db.ErrDuplicate
		}
	}
	now := s.now()
	c := recruiting.Candidate{
		ID:              s.nextID(),
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		Location:        in.Location,
		CurrentPosition: in.CurrentPosition,
		CurrentCompany:  in.CurrentCompany,
		Experience:      in.Experience,
		Skills:          cloneStrings(in.Skills),
		Education:       append([]recruiting.Education{}, in.Education...),
		ResumeURL:       in.ResumeURL,
		LinkedInURL:     in.LinkedInURL,
		PortfolioURL:    in.PortfolioURL,
		Status:          in.Status,
		Source:          in.Source,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.cands[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCandidate(_ context.Context, id int64, patch recruiting.CandidatePatch) (recruiting.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateCandidate"); err != nil {
		return recruiting.Candidate{}, err
	}
	c, ok := s.cands[id]
	if !ok {
		return recruiting.Candidate{}, db.ErrNotFound
	}
	set(&c.FirstName, patch.FirstName)
	set(&c.LastName, patch.LastName)
	set(&c.Email, patch.Email)
	setPtr(&c.Phone, patch.Phone)
	setPtr(&c.Location, patch.Location)
	setPtr(&c.CurrentPosition, patch.CurrentPosition)
	setPtr(&c.CurrentCompany, patch.CurrentCompany)
	setPtr(&c.Experience, patch.Experience)
	if patch.Skills != nil {
		c.Skills = cloneStrings(*patch.Skills)
	}
	if patch.Education != nil {
		c.Education = append([]recruiting.Education{}, *patch.Education...)
	}
	setPtr(&c.ResumeURL, patch.ResumeURL)
	setPtr(&c.LinkedInURL, patch.LinkedInURL)
	setPtr(&c.PortfolioURL, patch.PortfolioURL)
	set(&c.Status, patch.Status)
	set(&c.Source, patch.Source)
	setPtr(&c.Notes, patch.Notes)
	c.UpdatedAt = s.now()
	s.cands[id] = c
	return c, nil
}

func (s *Store) DeleteCandidate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteCandidate"); err != nil {
		return err
	}
	if _, ok := s.cands[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.cands, id)
	for appID, app := range s.apps {
		if app.CandidateID == id {
			s.deleteApplication(appID)
		}
	}
	return nil
}

func (s *Store) ListApplications(_ context.Context, filter recruiting.ApplicationFilter) ([]recruiting.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListApplications"); err != nil {
		return nil, err
	}
	out := []recruiting.Application{}
	for _, id := range sortedKeys(s.apps, true) {
		app := s.apps[id]
		if filter.JobID > 0 && app.JobID != filter.JobID {
			continue
		}
		if filter.CandidateID > 0 && app.CandidateID != filter.CandidateID {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (s *Store) GetApplication(_ context.Context, id int64) (recruiting.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetApplication"); err != nil {
		return recruiting.Application{}, err
	}
	app, ok := s.apps[id]
	if !ok {
		return recruiting.Application{}, db.ErrNotFound
	}
	return app, nil
}

func (s *Store) CreateApplication(_ context.Context, in recruiting.ApplicationInput) (recruiting.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateApplication"); err != nil {
		return recruiting.Application{}, err
	}
	if _, ok := s.jobs[in.JobID]; !ok {
		return recruiting.Application{}, db.ErrInvalidReference
	}
	if _, ok := s.cands[in.CandidateID]; !ok {
		return recruiting.Application{}, db.ErrInvalidReference
	}
	now := s.now()
	app := recruiting.Application{
		ID:           s.nextID(),
		JobID:        in.JobID,
		CandidateID:  in.CandidateID,
		Status:       in.Status,
		CoverLetter:  in.CoverLetter,
		AIMatchScore: in.AIMatchScore,
		Notes:        in.Notes,
		AppliedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.apps[app.ID] = app
	return app, nil
}

func (s *Store) UpdateApplication(_ context.Context, id int64, patch recruiting.ApplicationPatch) (recruiting.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateApplication"); err != nil {
		return recruiting.Application{}, err
	}
	app, ok := s.apps[id]
	if !ok {
		return recruiting.Application{}, db.ErrNotFound
	}
	set(&app.Status, patch.Status)
	setPtr(&app.CoverLetter, patch.CoverLetter)
	setPtr(&app.AIMatchScore, patch.AIMatchScore)
	setPtr(&app.Notes, patch.Notes)
	app.UpdatedAt = s.now()
	s.apps[id] = app
	return app, nil
}

func (s *Store) DeleteApplication(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteApplication"); err != nil {
		return err
	}
	if _, ok := s.apps[id]; !ok {
		return db.ErrNotFound
	}
	s.deleteApplication(id)
	return nil
}

// deleteApplication cascades to interviews, as the foreign key does.
func (s *Store) deleteApplication(id int64) {
	delete(s.apps, id)
	for viewID, view := range s.views {
		if view.ApplicationID == id {
			delete(s.views, viewID)
		}
	}
}

func (s *Store) ListInterviews(_ context.Context, filter recruiting.InterviewFilter) ([]recruiting.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListInterviews"); err != nil {
		return nil, err
	}
	out := []recruiting.Interview{}
	for _, id := range sortedKeys(s.views, false) {
		view := s.views[id]
		if filter.Date != nil {
			from, to := db.DayRange(*filter.Date)
			if view.ScheduledAt.Before(from) || !view.ScheduledAt.Before(to) {
				continue
			}
		}
		if filter.InterviewerID > 0 && view.InterviewerID != filter.InterviewerID {
			continue
		}
		if filter.Status != "" && view.Status != filter.Status {
			continue
		}
		if filter.ApplicationID > 0 && view.ApplicationID != filter.ApplicationID {
			continue
		}
		out = append(out, view)
	}
	slices.SortStableFunc(out, func(a, b recruiting.Interview) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	return out, nil
}

func (s *Store) GetInterview(_ context.Context, id int64) (recruiting.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetInterview"); err != nil {
		return recruiting.Interview{}, err
	}
	view, ok := s.views[id]
	if !ok {
		return recruiting.Interview{}, db.ErrNotFound
	}
	return view, nil
}

func (s *Store) CreateInterview(_ context.Context, in recruiting.InterviewInput) (recruiting.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateInterview"); err != nil {
		return recruiting.Interview{}, err
	}
	if _, ok := s.apps[in.ApplicationID]; !ok {
		return recruiting.Interview{}, db.ErrInvalidReference
	}
	if _, ok := s.users[in.InterviewerID]; !ok {
		return recruiting.Interview{}, db.ErrInvalidReference
	}
	now := s.now()
	view := recruiting.Interview{
		ID:              s.nextID(),
		ApplicationID:   in.ApplicationID,
		InterviewerID:   in.InterviewerID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Type:            in.Type,
		Status:          in.Status,
		Location:        in.Location,
		MeetingLink:     in.MeetingLink,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.views[view.ID] = view
	return view, nil
}

func (s *Store) UpdateInterview(_ context.Context, id int64, patch recruiting.InterviewPatch) (recruiting.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateInterview"); err != nil {
		return recruiting.Interview{}, err
	}
	view, ok := s.views[id]
	if !ok {
		return recruiting.Interview{}, db.ErrNotFound
	}
	if patch.InterviewerID != nil {
		if _, ok := s.users[*patch.InterviewerID]; !ok {
			return recruiting.Interview{}, db.ErrInvalidReference
		}
	}
	set(&view.InterviewerID, patch.InterviewerID)
	set(&view.ScheduledAt, patch.ScheduledAt)
	set(&view.DurationMinutes, patch.DurationMinutes)
	set(&view.Type, patch.Type)
	set(&view.Status, patch.Status)
	setPtr(&view.Location, patch.Location)
	setPtr(&view.MeetingLink, patch.MeetingLink)
	setPtr(&view.Rating, patch.Rating)
	setPtr(&view.Recommendation, patch.Recommendation)
	setPtr(&view.Feedback, patch.Feedback)
	setPtr(&view.Notes, patch.Notes)
	view.UpdatedAt = s.now()
	s.views[id] = view
	return view, nil
}

func (s *Store) DeleteInterview(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteInterview"); err != nil {
		return err
	}
	if _, ok := s.views[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.views, id)
	return nil
}
