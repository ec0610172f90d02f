package services

import (
	"conference-review-api/models"

	"gorm.io/gorm"
)

// SubmissionProgress is the completion breakdown for one submission.
type SubmissionProgress struct {
	SubmissionID     string `json:"submission_id"`
	TotalAssignments int    `json:"total_assignments"`
	Pending          int    `json:"pending"`
	Accepted         int    `json:"accepted"`
	Rejected         int    `json:"rejected"`
	Completed        int    `json:"completed"`
	ReviewsSubmitted int    `json:"reviews_submitted"`
}

// ConferenceProgress is the completion breakdown across every assignment
// carrying the given conference id.
type ConferenceProgress struct {
	ConferenceID     int                             `json:"conference_id"`
	TotalSubmissions int                             `json:"total_submissions"`
	TotalAssignments int                             `json:"total_assignments"`
	Completed        int                             `json:"completed"`
	CompletionRate   float64                         `json:"completion_rate"`
	ByStatus         map[models.AssignmentStatus]int `json:"by_status"`
}

type statusCount struct {
	Status models.AssignmentStatus `gorm:"column:status"`
	Total  int                     `gorm:"column:total"`
}

// ProgressService is a read-only aggregator over assignment and review state.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// SubmissionProgress aggregates assignment statuses and the review count for
// one submission.
func (s *ProgressService) SubmissionProgress(submissionID string) (*SubmissionProgress, error) {
	var rows []statusCount
	if err := s.db.Raw(
		"SELECT status, COUNT(*) AS total FROM assignments WHERE submission_id = ? GROUP BY status",
		submissionID,
	).Scan(&rows).Error; err != nil {
		return nil, unavailableErr("aggregate assignments", err)
	}

	progress := &SubmissionProgress{SubmissionID: submissionID}
	for _, row := range rows {
		progress.TotalAssignments += row.Total
		switch row.Status {
		case models.AssignmentPending:
			progress.Pending = row.Total
		case models.AssignmentAccepted:
			progress.Accepted = row.Total
		case models.AssignmentRejected:
			progress.Rejected = row.Total
		case models.AssignmentCompleted:
			progress.Completed = row.Total
		}
	}

	var reviews int
	if err := s.db.Raw(
		"SELECT COUNT(*) AS total FROM reviews WHERE assignment_id IN (SELECT assignment_id FROM assignments WHERE submission_id = ?)",
		submissionID,
	).Scan(&reviews).Error; err != nil {
		return nil, unavailableErr("count reviews", err)
	}
	progress.ReviewsSubmitted = reviews

	return progress, nil
}

// ConferenceProgress aggregates assignment state for a whole conference.
// A conference with no assignments yields zero totals and a 0 completion
// rate, not an error.
func (s *ProgressService) ConferenceProgress(conferenceID int) (*ConferenceProgress, error) {
	if conferenceID <= 0 {
		return nil, invalidArgumentErr("conference id %d is not valid", conferenceID)
	}

	var rows []statusCount
	if err := s.db.Raw(
		"SELECT status, COUNT(*) AS total FROM assignments WHERE conference_id = ? GROUP BY status",
		conferenceID,
	).Scan(&rows).Error; err != nil {
		return nil, unavailableErr("aggregate assignments", err)
	}

	progress := &ConferenceProgress{
		ConferenceID: conferenceID,
		ByStatus:     map[models.AssignmentStatus]int{},
	}
	for _, row := range rows {
		progress.TotalAssignments += row.Total
		progress.ByStatus[row.Status] = row.Total
		if row.Status == models.AssignmentCompleted {
			progress.Completed = row.Total
		}
	}
	if progress.TotalAssignments > 0 {
		progress.CompletionRate = float64(progress.Completed) / float64(progress.TotalAssignments)
	}

	var submissions int
	if err := s.db.Raw(
		"SELECT COUNT(DISTINCT submission_id) AS total FROM assignments WHERE conference_id = ?",
		conferenceID,
	).Scan(&submissions).Error; err != nil {
		return nil, unavailableErr("count submissions", err)
	}
	progress.TotalSubmissions = submissions

	return progress, nil
}
