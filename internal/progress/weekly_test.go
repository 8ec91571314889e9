package progress

import (
	"reflect"
	"testing"
	"time"

	"solo-sparks/internal/quest"
)

func TestWeeklyProgress_AlwaysFourBuckets(t *testing.T) {
	got := WeeklyProgress(nil, now)
	want := []WeekBucket{
		{Week: "Week 1"}, {Week: "Week 2"}, {Week: "Week 3"}, {Week: "Week 4"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WeeklyProgress(nil) = %+v, want %+v", got, want)
	}
}

func TestWeeklyProgress_Buckets(t *testing.T) {
	records := []quest.UserQuest{
		done("a", quest.CategoryCreative, 20, daysAgo(1)),
		done("b", quest.CategoryCreative, 15, now.Add(-time.Hour)),
		done("c", quest.CategorySocial, 30, daysAgo(7)),
		done("d", quest.CategorySocial, 10, daysAgo(8)),
		done("e", quest.CategoryPhysical, 25, daysAgo(27)),
		done("old", quest.CategoryPhysical, 99, daysAgo(29)),
		done("future", quest.CategoryPhysical, 99, now.Add(time.Hour)),
		{QuestID: "open", Status: quest.StatusInProgress, Quest: quest.Quest{Points: 99}},
	}

	got := WeeklyProgress(records, now)
	want := []WeekBucket{
		{Week: "Week 1", Completed: 1, Points: 25},
		{Week: "Week 2", Completed: 0, Points: 0},
		{Week: "Week 3", Completed: 2, Points: 40},
		{Week: "Week 4", Completed: 2, Points: 35},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
