package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/survey"
)

// GetAnalyticsSummary reports the headline numbers of the dashboard.
func GetAnalyticsSummary(c *gin.Context) {
	db := config.DB

	var total int64
	db.Model(&models.Submission{}).Count(&total)

	var avg struct{ Avg float64 }
	db.Raw(`
		SELECT COALESCE(ROUND(AVG(overall_score)::numeric, 2), 0) AS avg
		FROM submissions
		WHERE rated_count > 0
	`).Scan(&avg)

	var thisMonth int64
	db.Model(&models.Submission{}).
		Where("submitted_at >= date_trunc('month', now())").
		Count(&thisMonth)

	// Client type breakdown straight out of the answers JSON.
	var clientRows []struct {
		ClientType string
		Count      int
	}
	db.Raw(`
		SELECT COALESCE(answers_json::jsonb ->> 'clientType', '') AS client_type, COUNT(*) AS count
		FROM submissions
		GROUP BY 1
		ORDER BY count DESC
	`).Scan(&clientRows)

	clientTypes := []gin.H{}
	for _, r := range clientRows {
		clientTypes = append(clientTypes, gin.H{"client_type": r.ClientType, "count": r.Count})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_responses": total,
		"overall_average": avg.Avg,
		"this_month":      thisMonth,
		"client_types":    clientTypes,
	})
}

// GetRatingBreakdown reports, per matrix row, the answer distribution and
// the mean rating (NA excluded).
func GetRatingBreakdown(c *gin.Context) {
	fields, err := SchemaCache.Fields()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load survey schema"})
		return
	}
	db := config.DB

	results := []gin.H{}
	for _, f := range fields {
		if f.Type != survey.TypeMatrix {
			continue
		}
		for _, row := range f.Rows {
			jsonPath := fmt.Sprintf("{%s,%s}", f.Name, row.Name)

			var dist []struct {
				Choice string
				Count  int
			}
			db.Raw(`
				SELECT answers_json::jsonb #>> ? AS choice, COUNT(*) AS count
				FROM submissions
				WHERE answers_json::jsonb #>> ? IS NOT NULL
				GROUP BY 1
				ORDER BY 1
			`, jsonPath, jsonPath).Scan(&dist)

			var sum, rated int
			histogram := []gin.H{}
			for _, d := range dist {
				histogram = append(histogram, gin.H{"choice": d.Choice, "count": d.Count})
				if d.Choice == survey.NotApplicable {
					continue
				}
				var n int
				if _, err := fmt.Sscanf(d.Choice, "%d", &n); err == nil {
					sum += n * d.Count
					rated += d.Count
				}
			}

			entry := gin.H{
				"field":     f.Name,
				"row":       row.Name,
				"label":     row.Label,
				"histogram": histogram,
			}
			if rated > 0 {
				entry["average"] = float64(sum) / float64(rated)
			}
			results = append(results, entry)
		}
	}

	c.JSON(http.StatusOK, gin.H{"ratings": results})
}

// GetScoreTrend reports the monthly average overall score.
func GetScoreTrend(c *gin.Context) {
	var rows []struct {
		Month string
		Avg   float64
		Count int
	}
	config.DB.Raw(`
		SELECT to_char(date_trunc('month', submitted_at), 'YYYY-MM') AS month,
		       COALESCE(ROUND(AVG(overall_score)::numeric, 2), 0) AS avg,
		       COUNT(*) AS count
		FROM submissions
		WHERE rated_count > 0
		GROUP BY 1
		ORDER BY 1
	`).Scan(&rows)

	trend := []gin.H{}
	for _, r := range rows {
		trend = append(trend, gin.H{"month": r.Month, "average": r.Avg, "count": r.Count})
	}
	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
