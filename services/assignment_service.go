package services

import (
	"errors"
	"strings"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// assignmentTransitions is the complete lifecycle of an assignment:
//
//	pending  -> accepted | rejected
//	accepted -> completed   (set by the review recorder)
//
// rejected and completed are terminal. New states or transitions must be
// added here; nothing else decides what is a legal move.
var assignmentTransitions = map[models.AssignmentStatus]map[models.AssignmentStatus]bool{
	models.AssignmentPending: {
		models.AssignmentAccepted: true,
		models.AssignmentRejected: true,
	},
	models.AssignmentAccepted: {
		models.AssignmentCompleted: true,
	},
}

// CanTransition reports whether the assignment lifecycle permits from -> to.
func CanTransition(from, to models.AssignmentStatus) bool {
	return assignmentTransitions[from][to]
}

// AssignmentOutcome is one reviewer's result inside an AutoAssign batch.
type AssignmentOutcome struct {
	ReviewerID int                `json:"reviewer_id"`
	Assignment *models.Assignment `json:"assignment,omitempty"`
	Error      string             `json:"error,omitempty"`
	ErrorKind  ErrorKind          `json:"error_kind,omitempty"`
}

// AssignmentService creates reviewer/submission pairings and walks them
// through the lifecycle. It consults the preference ledger to block
// conflicted assignments.
type AssignmentService struct {
	db    *gorm.DB
	prefs *PreferenceService
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db, prefs: NewPreferenceService(db)}
}

// CreateAssignment pairs a reviewer with a submission in status pending.
// The pair's uniqueness is enforced by the storage index, not by a lookup:
// under concurrent calls exactly one insert wins and the loser gets a
// duplicate-assignment error.
func (s *AssignmentService) CreateAssignment(chairID, reviewerID int, submissionID string, conferenceID *int, dueDate *time.Time) (*models.Assignment, error) {
	assignment, err := s.newAssignment(chairID, reviewerID, submissionID, conferenceID, dueDate, models.AssignmentPending)
	if err != nil {
		return nil, err
	}
	if err := s.insertAssignment(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// AutoAssign calls CreateAssignment once per reviewer and reports each
// outcome separately: one reviewer's conflict or duplicate never aborts the
// rest of the batch.
func (s *AssignmentService) AutoAssign(chairID int, submissionID string, conferenceID *int, reviewerIDs []int) ([]AssignmentOutcome, error) {
	if len(reviewerIDs) == 0 {
		return nil, invalidArgumentErr("at least one reviewer id is required")
	}

	outcomes := make([]AssignmentOutcome, 0, len(reviewerIDs))
	for _, reviewerID := range reviewerIDs {
		outcome := AssignmentOutcome{ReviewerID: reviewerID}
		assignment, err := s.CreateAssignment(chairID, reviewerID, submissionID, conferenceID, nil)
		if err != nil {
			var wf *WorkflowError
			if errors.As(err, &wf) {
				outcome.Error = wf.Message
				outcome.ErrorKind = wf.Kind
			} else {
				outcome.Error = err.Error()
			}
		} else {
			outcome.Assignment = assignment
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// SelfAssign lets a reviewer claim a submission. A fresh claim creates the
// row directly in accepted; a pending row left by a chair is claimed with a
// conditional update; an already accepted or completed row is a no-op
// success; a rejected row cannot be claimed again.
func (s *AssignmentService) SelfAssign(reviewerID int, submissionID string, conferenceID *int) (*models.Assignment, error) {
	assignment, err := s.newAssignment(reviewerID, reviewerID, submissionID, conferenceID, nil, models.AssignmentAccepted)
	if err != nil {
		return nil, err
	}

	insertErr := s.insertAssignment(assignment)
	if insertErr == nil {
		return assignment, nil
	}
	if KindOf(insertErr) != KindDuplicateAssignment {
		return nil, insertErr
	}

	// The pair already exists: claim it if it is still pending. The update
	// carries the status condition so a concurrent claim or rejection wins
	// or loses atomically.
	res := s.db.Model(&models.Assignment{}).
		Where("reviewer_id = ? AND submission_id = ? AND status = ?",
			reviewerID, assignment.SubmissionID, models.AssignmentPending).
		Updates(map[string]interface{}{
			"status":    models.AssignmentAccepted,
			"update_at": time.Now(),
		})
	if res.Error != nil {
		return nil, unavailableErr("claim assignment", res.Error)
	}

	var existing models.Assignment
	if err := s.db.Where("reviewer_id = ? AND submission_id = ?", reviewerID, assignment.SubmissionID).
		First(&existing).Error; err != nil {
		return nil, unavailableErr("load assignment", err)
	}

	switch existing.Status {
	case models.AssignmentAccepted, models.AssignmentCompleted:
		return &existing, nil
	default:
		return nil, invalidTransitionErr("assignment %d is %s and cannot be claimed",
			existing.AssignmentID, existing.Status)
	}
}

// UpdateStatus is the reviewer's accept/reject transition out of pending.
func (s *AssignmentService) UpdateStatus(assignmentID, callerID int, target models.AssignmentStatus) (*models.Assignment, error) {
	if target != models.AssignmentAccepted && target != models.AssignmentRejected {
		return nil, invalidArgumentErr("target status %q is not reviewer-settable", target)
	}

	var assignment models.Assignment
	if err := s.db.Where("assignment_id = ?", assignmentID).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("assignment %d not found", assignmentID)
		}
		return nil, unavailableErr("load assignment", err)
	}

	if assignment.ReviewerID != callerID {
		return nil, forbiddenErr("assignment %d does not belong to reviewer %d", assignmentID, callerID)
	}

	if !CanTransition(assignment.Status, target) {
		return nil, invalidTransitionErr("assignment %d is %s, cannot move to %s",
			assignmentID, assignment.Status, target)
	}

	now := time.Now()
	res := s.db.Model(&models.Assignment{}).
		Where("assignment_id = ? AND status = ?", assignmentID, models.AssignmentPending).
		Updates(map[string]interface{}{
			"status":    target,
			"update_at": now,
		})
	if res.Error != nil {
		return nil, unavailableErr("update assignment status", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost a race: someone moved it out of pending between the read and
		// the conditional write. Report the status it holds now.
		var current models.Assignment
		if err := s.db.Where("assignment_id = ?", assignmentID).First(&current).Error; err != nil {
			return nil, unavailableErr("load assignment", err)
		}
		return nil, invalidTransitionErr("assignment %d is %s, cannot move to %s",
			assignmentID, current.Status, target)
	}

	assignment.Status = target
	assignment.UpdateAt = now
	return &assignment, nil
}

// ListMyAssignments returns the reviewer's assignments, newest first.
func (s *AssignmentService) ListMyAssignments(reviewerID int, page, limit int) ([]models.Assignment, int64, error) {
	offset, limit := pageWindow(page, limit)

	var total int64
	if err := s.db.Model(&models.Assignment{}).
		Where("reviewer_id = ?", reviewerID).
		Count(&total).Error; err != nil {
		return nil, 0, unavailableErr("count assignments", err)
	}

	assignments := []models.Assignment{}
	if err := s.db.Where("reviewer_id = ?", reviewerID).
		Order("create_at DESC, assignment_id DESC").
		Offset(offset).Limit(limit).
		Find(&assignments).Error; err != nil {
		return nil, 0, unavailableErr("list assignments", err)
	}
	return assignments, total, nil
}

func (s *AssignmentService) newAssignment(assignedBy, reviewerID int, submissionID string, conferenceID *int, dueDate *time.Time, status models.AssignmentStatus) (*models.Assignment, error) {
	if assignedBy <= 0 {
		return nil, invalidArgumentErr("assigner id %d is not a valid identity", assignedBy)
	}
	if reviewerID <= 0 {
		return nil, invalidArgumentErr("reviewer id %d is not a valid identity", reviewerID)
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, invalidArgumentErr("submission id is required")
	}

	conflicted, err := s.prefs.HasConflict(reviewerID, submissionID)
	if err != nil {
		return nil, err
	}
	if conflicted {
		return nil, conflictOfInterestErr("reviewer %d declared a conflict of interest on submission %s",
			reviewerID, submissionID)
	}

	now := time.Now()
	return &models.Assignment{
		ReviewerID:   reviewerID,
		SubmissionID: submissionID,
		ConferenceID: conferenceID,
		Status:       status,
		AssignedBy:   assignedBy,
		DueDate:      dueDate,
		CreateAt:     now,
		UpdateAt:     now,
	}, nil
}

func (s *AssignmentService) insertAssignment(assignment *models.Assignment) error {
	if err := s.db.Create(assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return duplicateAssignmentErr("reviewer %d is already assigned to submission %s",
				assignment.ReviewerID, assignment.SubmissionID)
		}
		return unavailableErr("create assignment", err)
	}
	return nil
}
