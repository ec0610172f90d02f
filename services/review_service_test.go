package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"conference-review-api/models"
)

var (
	pluckAssignIDsPattern = regexp.MustCompile("SELECT `assignment_id` FROM `assignments` WHERE submission_id = \\?")
	insertReviewPattern   = regexp.MustCompile("INSERT INTO `reviews`")
	completeAssignPattern = regexp.MustCompile("UPDATE `assignments` SET .* WHERE assignment_id = \\? AND status = \\?")
)

var reviewColumns = []string{
	"review_id", "assignment_id", "conference_id", "score", "confidence",
	"comment_for_author", "comment_for_pc", "recommendation", "create_at", "update_at",
}

func reviewRow(id, assignmentID int64, score int64, recommendation string) []driver.Value {
	now := time.Now()
	return []driver.Value{id, assignmentID, nil, score, "medium", nil, nil, recommendation, now, now}
}

func validReviewInput() ReviewInput {
	return ReviewInput{
		Score:          70,
		Confidence:     models.ConfidenceMedium,
		Recommendation: models.RecommendAccept,
	}
}

func TestSubmitReviewValidatesInput(t *testing.T) {
	svc := NewReviewService(nil)

	input := validReviewInput()
	input.Score = 101
	if _, err := svc.SubmitReview(7, 5, input); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for score 101, got %v", err)
	}

	input = validReviewInput()
	input.Score = -1
	if _, err := svc.SubmitReview(7, 5, input); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for score -1, got %v", err)
	}

	input = validReviewInput()
	input.Confidence = "certain"
	if _, err := svc.SubmitReview(7, 5, input); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for unknown confidence, got %v", err)
	}

	input = validReviewInput()
	input.Recommendation = "strong_accept"
	if _, err := svc.SubmitReview(7, 5, input); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for unknown recommendation, got %v", err)
	}

	if _, err := svc.SubmitReview(0, 5, validReviewInput()); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for reviewer 0, got %v", err)
	}
}

func TestSubmitReviewCompletesAssignment(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectAssignPattern,
			argsAny: true,
			columns: assignmentColumns,
			rows:    assignmentRow(5, 7, "sub-1", "accepted"),
		},
		{
			kind:    kindExec,
			pattern: insertReviewPattern,
			argsAny: true,
			result:  scriptedResult{lastInsertID: 31, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: completeAssignPattern,
			argsAny: true,
			result:  scriptedResult{rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	review, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
	if err != nil {
		t.Fatalf("SubmitReview returned error: %v", err)
	}
	if review.ReviewID != 31 {
		t.Fatalf("expected review id 31, got %d", review.ReviewID)
	}
	if review.AssignmentID != 5 {
		t.Fatalf("expected assignment id 5, got %d", review.AssignmentID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitReviewRejectsSecondReview(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectAssignPattern,
			argsAny: true,
			columns: assignmentColumns,
			rows:    assignmentRow(5, 7, "sub-1", "accepted"),
		},
		{
			kind:    kindExec,
			pattern: insertReviewPattern,
			argsAny: true,
			err:     duplicateKeyErr(),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
	if KindOf(err) != KindDuplicateReview {
		t.Fatalf("expected duplicate_review, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitReviewForbiddenForOtherReviewer(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectAssignPattern,
			argsAny: true,
			columns: assignmentColumns,
			rows:    assignmentRow(5, 9, "sub-1", "accepted"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
	if KindOf(err) != KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitReviewRequiresAcceptedAssignment(t *testing.T) {
	for _, status := range []string{"pending", "rejected"} {
		steps := []*queryStep{
			{
				kind:    kindQuery,
				pattern: selectAssignPattern,
				argsAny: true,
				columns: assignmentColumns,
				rows:    assignmentRow(5, 7, "sub-1", status),
			},
		}
		db, _, cleanup := newScriptedGormDB(t, steps)

		_, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
		if KindOf(err) != KindInvalidTransition {
			t.Errorf("status %s: expected invalid_transition, got %v", status, err)
		}
		cleanup()
	}
}

func TestSubmitReviewRepeatOnCompletedAssignment(t *testing.T) {
	// A successful submission leaves the assignment completed with its review
	// stored; submitting again must fail as a duplicate, not a status error.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectAssignPattern,
			argsAny: true,
			columns: assignmentColumns,
			rows:    assignmentRow(5, 7, "sub-1", "completed"),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `reviews` WHERE assignment_id = \\?"),
			args:    []driver.Value{int64(5)},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
	if KindOf(err) != KindDuplicateReview {
		t.Fatalf("expected duplicate_review on repeat submission, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitReviewCompletedWithoutReview(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectAssignPattern,
			argsAny: true,
			columns: assignmentColumns,
			rows:    assignmentRow(5, 7, "sub-1", "completed"),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `reviews` WHERE assignment_id = \\?"),
			args:    []driver.Value{int64(5)},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
	if KindOf(err) != KindInvalidTransition {
		t.Fatalf("expected invalid_transition for completed assignment without a review, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitReviewAssignmentNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectAssignPattern,
			argsAny: true,
			columns: assignmentColumns,
			rows:    [][]driver.Value{},
		},
	}
	db, _, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSubmitReviewLostRaceRollsBack(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectAssignPattern,
			argsAny: true,
			columns: assignmentColumns,
			rows:    assignmentRow(5, 7, "sub-1", "accepted"),
		},
		{
			kind:    kindExec,
			pattern: insertReviewPattern,
			argsAny: true,
			result:  scriptedResult{lastInsertID: 31, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: completeAssignPattern,
			argsAny: true,
			result:  scriptedResult{rowsAffected: 0},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).SubmitReview(7, 5, validReviewInput())
	if KindOf(err) != KindInvalidTransition {
		t.Fatalf("expected invalid_transition when the assignment moved, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListReviewsForSubmissionEmptyWithoutAssignments(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: pluckAssignIDsPattern,
			args:    []driver.Value{"sub-1"},
			columns: []string{"assignment_id"},
			rows:    [][]driver.Value{},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	reviews, total, err := NewReviewService(db).ListReviewsForSubmission("sub-1", 1, 20)
	if err != nil {
		t.Fatalf("ListReviewsForSubmission returned error: %v", err)
	}
	if total != 0 || len(reviews) != 0 {
		t.Fatalf("expected empty result, got total=%d len=%d", total, len(reviews))
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListReviewsForSubmission(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: pluckAssignIDsPattern,
			args:    []driver.Value{"sub-1"},
			columns: []string{"assignment_id"},
			rows:    [][]driver.Value{{int64(5)}, {int64(6)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `reviews` WHERE assignment_id IN \\(\\?,\\?\\)"),
			args:    []driver.Value{int64(5), int64(6)},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(2)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `reviews` WHERE assignment_id IN \\(\\?,\\?\\) ORDER BY create_at DESC, review_id DESC"),
			argsAny: true,
			columns: reviewColumns,
			rows: [][]driver.Value{
				reviewRow(32, 6, 80, "accept"),
				reviewRow(31, 5, 60, "weak_reject"),
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	reviews, total, err := NewReviewService(db).ListReviewsForSubmission("sub-1", 1, 20)
	if err != nil {
		t.Fatalf("ListReviewsForSubmission returned error: %v", err)
	}
	if total != 2 || len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got total=%d len=%d", total, len(reviews))
	}
	if reviews[0].ReviewID != 32 {
		t.Fatalf("expected newest review first, got %d", reviews[0].ReviewID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAnonymizedReviewsStripsIdentity(t *testing.T) {
	pcOnly := "typo on page 3"
	authorFacing := "solid evaluation section"
	now := time.Now()
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: pluckAssignIDsPattern,
			args:    []driver.Value{"sub-1"},
			columns: []string{"assignment_id"},
			rows:    [][]driver.Value{{int64(5)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `reviews` WHERE assignment_id IN \\(\\?\\) ORDER BY review_id ASC"),
			argsAny: true,
			columns: reviewColumns,
			rows: [][]driver.Value{
				{int64(31), int64(5), nil, int64(70), "high", authorFacing, pcOnly, "accept", now, now},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	anonymized, err := NewReviewService(db).ListAnonymizedReviews("sub-1")
	if err != nil {
		t.Fatalf("ListAnonymizedReviews returned error: %v", err)
	}
	if len(anonymized) != 1 {
		t.Fatalf("expected 1 review, got %d", len(anonymized))
	}
	got := anonymized[0]
	if got.Score != 70 || got.Recommendation != models.RecommendAccept {
		t.Fatalf("unexpected projection: %+v", got)
	}
	if got.CommentForAuthor == nil || *got.CommentForAuthor != authorFacing {
		t.Fatalf("expected author comment to survive, got %+v", got.CommentForAuthor)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
