package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/voicediary-backend/internal/services"
)

type StatisticsHandler struct {
	stats services.StatisticsService
}

func NewStatisticsHandler(stats services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

func (sh *StatisticsHandler) Statistics(c *gin.Context) {
	result, err := sh.stats.Statistics(c.Request.Context(), services.StatisticsQuery{
		UserID:    c.Param("user_id"),
		Period:    c.Query("period"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}

func (sh *StatisticsHandler) Insights(c *gin.Context) {
	insights, err := sh.stats.Insights(c.Request.Context(), c.Param("user_id"), c.Query("period"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, insights)
}

func (sh *StatisticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := sh.stats.Dashboard(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, dashboard)
}
