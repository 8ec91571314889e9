package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"solo-sparks/internal/db"
	"solo-sparks/internal/metrics"
	"solo-sparks/internal/profile"
	"solo-sparks/internal/quest"
	"solo-sparks/internal/recommend"
	"solo-sparks/internal/rewards"
)

// GET /quests returns the user's recommendations together with their quest
// records and balance.
func ListQuestsHandler(svc *services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		log := svc.log.WithField("user", userID)

		p, err := profile.Get(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load profile"}})
			return
		}
		records, err := quest.RecordsForUser(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load quests"}})
			return
		}
		total, err := rewards.Total(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load points"}})
			return
		}
		completed := 0
		for i := range records {
			if records[i].Completed() {
				completed++
			}
		}

		recs, needsAssessment, err := recommendationsFor(c, svc, p, records)
		if err != nil {
			log.WithError(err).Error("recommendation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to generate recommendations"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"recommendations": recs,
			"userQuests":      records,
			"totalPoints":     total,
			"completedQuests": completed,
			"needsAssessment": needsAssessment,
		})
	}
}

// recommendationsFor serves from the cache when possible. A missing or
// unusable profile yields no recommendations and asks for the assessment.
func recommendationsFor(c *gin.Context, svc *services, p *profile.Profile, records []quest.UserQuest) ([]recommend.Recommendation, bool, error) {
	if p == nil {
		return []recommend.Recommendation{}, true, nil
	}
	ctx := c.Request.Context()
	log := svc.log.WithField("user", p.UserID)

	if recs, ok, err := svc.cache.Get(ctx, p.UserID); err != nil {
		log.WithError(err).Warn("recommendation cache read failed")
	} else if ok {
		// a missed invalidation or a racing Set can leave claimed quests in the cached list
		return dropClaimed(recs, records), false, nil
	}

	moods, err := profile.RecentMoods(db.DB, p.UserID, profile.RecentMoodWindow)
	if err != nil {
		return nil, false, err
	}
	catalog, err := quest.ActiveCatalog(db.DB)
	if err != nil {
		return nil, false, err
	}
	recs, err := svc.recommend.Generate(p, moods, catalog, records)
	if errors.Is(err, profile.ErrInvalidProfile) {
		log.WithError(err).Warn("stored profile is invalid, asking for a new assessment")
		return []recommend.Recommendation{}, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := svc.cache.Set(ctx, p.UserID, recs); err != nil {
		log.WithError(err).Warn("recommendation cache write failed")
	}
	return recs, false, nil
}

// dropClaimed removes recommendations for quests the user already has a
// record for, keeping the order.
func dropClaimed(recs []recommend.Recommendation, records []quest.UserQuest) []recommend.Recommendation {
	claimed := quest.ClaimedIDs(records)
	out := make([]recommend.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if _, ok := claimed[rec.Quest.ID]; !ok {
			out = append(out, rec)
		}
	}
	return out
}

type AssignRequest struct {
	QuestID string `json:"questId" binding:"required"`
	Action  string `json:"action"`
}

// POST /quests  {"questId": "...", "action": "assign"}
func AssignQuestHandler(svc *services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		var req AssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "questId required"}})
			return
		}
		if req.Action != "assign" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid action"}})
			return
		}
		uq, err := quest.Assign(db.DB, userID, req.QuestID)
		if err != nil {
			status := errorStatus(err, map[error]int{
				quest.ErrNotFound:       http.StatusNotFound,
				quest.ErrAlreadyClaimed: http.StatusConflict,
			})
			msg := err.Error()
			if status == http.StatusInternalServerError {
				svc.log.WithError(err).WithField("quest", req.QuestID).Error("quest assignment failed")
				msg = "Failed to assign quest"
			}
			c.JSON(status, gin.H{"error": gin.H{"message": msg}})
			return
		}
		invalidateRecommendations(c, svc, userID)
		c.JSON(http.StatusCreated, gin.H{"userQuest": uq})
	}
}

// GET /quests/:id
func GetQuestHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := quest.GetActive(db.DB, c.Param("id"))
		if errors.Is(err, quest.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Quest not found"}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load quest"}})
			return
		}
		uq, err := quest.FindRecord(db.DB, currentUserID(c), q.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load quest"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"quest":       q,
			"userQuest":   uq,
			"isCompleted": uq != nil && uq.Status == quest.StatusCompleted,
			"isAssigned":  uq != nil,
		})
	}
}

type CompleteRequest struct {
	Reflection  string                  `json:"reflection"`
	Reflections []quest.ReflectionInput `json:"reflections"`
}

// POST /quests/:id/complete
func CompleteQuestHandler(svc *services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		var req CompleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		for _, r := range req.Reflections {
			if !r.Type.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Reflection type must be TEXT, PHOTO or AUDIO"}})
				return
			}
		}

		q, err := quest.GetActive(db.DB, c.Param("id"))
		if errors.Is(err, quest.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Quest not found or inactive"}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load quest"}})
			return
		}

		bonus := rewards.ReflectionBonus * len(req.Reflections)
		var uq *quest.UserQuest
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			uq, err = quest.Complete(tx, userID, q.ID, req.Reflection, req.Reflections, clock())
			if err != nil {
				return err
			}
			if err := rewards.Award(tx, userID, q.Points, rewards.SourceQuestCompletion, q.ID); err != nil {
				return err
			}
			return rewards.Award(tx, userID, bonus, rewards.SourceReflectionBonus, q.ID)
		})
		if errors.Is(err, quest.ErrAlreadyCompleted) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Quest already completed"}})
			return
		}
		if err != nil {
			svc.log.WithError(err).WithField("quest", q.ID).Error("quest completion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to complete quest"}})
			return
		}

		metrics.QuestCompletions.WithLabelValues(string(q.Category)).Inc()
		invalidateRecommendations(c, svc, userID)
		uq.Quest = *q
		c.JSON(http.StatusOK, gin.H{
			"message":      "Quest completed successfully",
			"pointsEarned": q.Points + bonus,
			"userQuest":    uq,
			"quest":        q,
		})
	}
}
