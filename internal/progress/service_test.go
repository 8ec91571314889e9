package progress

import (
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"solo-sparks/internal/metrics"
	"solo-sparks/internal/quest"
)

func TestSummarize(t *testing.T) {
	records := []quest.UserQuest{
		done("a", quest.CategoryCreative, 20, daysAgo(2)),
		done("b", quest.CategoryCreative, 10, daysAgo(0)),
		done("c", quest.CategorySocial, 30, daysAgo(1)),
		{QuestID: "d", Status: quest.StatusAssigned},
	}
	before := testutil.ToFloat64(metrics.ProgressSummaries)

	sum := NewService(nil).Summarize(records, nil, 110, now)

	if sum.TotalQuests != 4 || sum.CompletedQuests != 3 || sum.TotalPoints != 110 || sum.CurrentStreak != 3 {
		t.Errorf("unexpected totals: %d quests, %d completed, %d points, streak %d",
			sum.TotalQuests, sum.CompletedQuests, sum.TotalPoints, sum.CurrentStreak)
	}
	wantCategories := map[quest.Category]int{quest.CategoryCreative: 2, quest.CategorySocial: 1}
	if !reflect.DeepEqual(sum.CategoriesCompleted, wantCategories) {
		t.Errorf("CategoriesCompleted = %v, want %v", sum.CategoriesCompleted, wantCategories)
	}
	if len(sum.WeeklyProgress) != 4 {
		t.Fatalf("expected 4 weekly buckets, got %d", len(sum.WeeklyProgress))
	}
	if last := sum.WeeklyProgress[3]; last.Completed != 3 || last.Points != 60 {
		t.Errorf("current week = %+v, want 3 completed for 60 points", last)
	}
	if got := titles(sum.RecentAchievements); !reflect.DeepEqual(got, []string{"First Quest Complete"}) {
		t.Errorf("achievements = %v", got)
	}

	var order []string
	for _, d := range sum.CompletedQuestDetails {
		order = append(order, d.QuestID)
	}
	if !reflect.DeepEqual(order, []string{"b", "c", "a"}) {
		t.Errorf("expected newest completions first, got %v", order)
	}

	if got := testutil.ToFloat64(metrics.ProgressSummaries); got != before+1 {
		t.Errorf("expected summary counter %v, got %v", before+1, got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := NewService(nil).Summarize(nil, nil, 0, now)
	if sum.CurrentStreak != 0 {
		t.Errorf("expected no streak, got %d", sum.CurrentStreak)
	}
	if len(sum.WeeklyProgress) != 4 {
		t.Errorf("expected 4 weekly buckets, got %d", len(sum.WeeklyProgress))
	}
	if len(sum.RecentAchievements) != 0 || len(sum.CompletedQuestDetails) != 0 {
		t.Errorf("expected empty lists, got %v and %v", sum.RecentAchievements, sum.CompletedQuestDetails)
	}
}
