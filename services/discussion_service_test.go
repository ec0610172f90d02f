package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"
)

func TestPostDiscussionValidates(t *testing.T) {
	svc := NewDiscussionService(nil)

	if _, err := svc.PostDiscussion(0, "sub-1", nil, "looks sound"); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for user 0, got %v", err)
	}
	if _, err := svc.PostDiscussion(7, " ", nil, "looks sound"); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for blank submission, got %v", err)
	}
	if _, err := svc.PostDiscussion(7, "sub-1", nil, "   "); KindOf(err) != KindInvalidArgument {
		t.Fatalf("expected invalid_argument for blank message, got %v", err)
	}
}

func TestPostDiscussionAppends(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `discussion_messages`"),
			argsAny: true,
			result:  scriptedResult{lastInsertID: 41, rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	msg, err := NewDiscussionService(db).PostDiscussion(7, "  sub-1  ", nil, "  the proof in §4 holds  ")
	if err != nil {
		t.Fatalf("PostDiscussion returned error: %v", err)
	}
	if msg.MessageID != 41 {
		t.Fatalf("expected message id 41, got %d", msg.MessageID)
	}
	if msg.SubmissionID != "sub-1" {
		t.Fatalf("expected trimmed submission id, got %q", msg.SubmissionID)
	}
	if msg.Message != "the proof in §4 holds" {
		t.Fatalf("expected trimmed message, got %q", msg.Message)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListDiscussionsOldestFirst(t *testing.T) {
	now := time.Now()
	columns := []string{"message_id", "submission_id", "conference_id", "user_id", "message", "create_at"}
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `discussion_messages` WHERE submission_id = \\?"),
			args:    []driver.Value{"sub-1"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(2)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `discussion_messages` WHERE submission_id = \\? ORDER BY create_at ASC, message_id ASC"),
			argsAny: true,
			columns: columns,
			rows: [][]driver.Value{
				{int64(41), "sub-1", nil, int64(7), "first", now.Add(-time.Hour)},
				{int64(42), "sub-1", nil, int64(8), "second", now},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	messages, total, err := NewDiscussionService(db).ListDiscussions("sub-1", 1, 20)
	if err != nil {
		t.Fatalf("ListDiscussions returned error: %v", err)
	}
	if total != 2 || len(messages) != 2 {
		t.Fatalf("expected 2 messages, got total=%d len=%d", total, len(messages))
	}
	if messages[0].Message != "first" {
		t.Fatalf("expected chronological order, got %q first", messages[0].Message)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostRebuttalAppends(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `rebuttal_messages`"),
			argsAny: true,
			result:  scriptedResult{lastInsertID: 51, rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	msg, err := NewDiscussionService(db).PostRebuttal(4, "sub-1", nil, "we address the scaling concern below")
	if err != nil {
		t.Fatalf("PostRebuttal returned error: %v", err)
	}
	if msg.MessageID != 51 || msg.AuthorID != 4 {
		t.Fatalf("unexpected rebuttal row: %+v", msg)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListRebuttalsEmpty(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `rebuttal_messages` WHERE submission_id = \\? ORDER BY create_at ASC, message_id ASC"),
			args:    []driver.Value{"sub-1"},
			columns: []string{"message_id", "submission_id", "author_id", "conference_id", "message", "create_at"},
			rows:    [][]driver.Value{},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	messages, err := NewDiscussionService(db).ListRebuttals("sub-1")
	if err != nil {
		t.Fatalf("ListRebuttals returned error: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty list, got %d", len(messages))
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
