package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kirnik55/building-app/database"
)

// How long a computed summary stays in Redis.
const summaryCacheTTL = 30 * time.Second

// ReportsSummary handles GET /api/reports/summary. Malformed dates never
// break the report, they just stop constraining it. When Redis is around
// the serialized payload is cached per filter combination.
func ReportsSummary(c *fiber.Ctx) error {
	f := &database.SummaryFilter{
		Project:  c.Query("project"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	cacheKey := fmt.Sprintf("cache:reports:summary:%s:%s:%s", f.Project, f.DateFrom, f.DateTo)
	if database.Rdb != nil {
		if cached, err := database.Rdb.Get(database.Ctx, cacheKey).Bytes(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}
	}

	summary, err := database.Summarize(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if database.Rdb != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := database.Rdb.Set(database.Ctx, cacheKey, data, summaryCacheTTL).Err(); err != nil {
				log.Printf("Error setting summary cache in Redis: %v", err)
			}
		}
	}

	return c.JSON(summary)
}
