package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/archetype"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

// parseID reads the :id path parameter, answering 400 itself on failure.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.SendValidationError(c, "Invalid player ID", fmt.Sprintf("%q is not a positive integer", c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

// intQuery reads a non-negative integer query parameter.
func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

// idListQuery parses a comma separated id list such as "3,7,9".
func idListQuery(c *gin.Context, key string) ([]uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s must be a comma separated list of ids", key)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// filtersFromQuery builds card filters from the shared listing parameters:
// position, group, team, card_type, age_group and q. assigned is consulted
// only for the archetype parameter.
func filtersFromQuery(c *gin.Context, assigned func() (archetype.Assignments, error)) ([]ranking.Filter, error) {
	var filters []ranking.Filter
	if v := c.Query("position"); v != "" {
		filters = append(filters, ranking.ByPosition(v))
	}
	if v := c.Query("group"); v != "" {
		if len(ranking.PositionsIn(v)) == 0 {
			return nil, fmt.Errorf("unknown position group %q", v)
		}
		filters = append(filters, ranking.InGroup(v))
	}
	if v := c.Query("team"); v != "" {
		filters = append(filters, ranking.ByTeam(v))
	}
	if v := c.Query("card_type"); v != "" {
		filters = append(filters, ranking.ByCardType(v))
	}
	if v := c.Query("age_group"); v != "" {
		switch v {
		case "young", "prime", "veteran":
			filters = append(filters, ranking.ByAgeBand(v))
		default:
			return nil, fmt.Errorf("age_group must be young, prime or veteran")
		}
	}
	if v := c.Query("q"); v != "" {
		filters = append(filters, ranking.NameContains(v))
	}
	if v := c.Query("archetype"); v != "" && assigned != nil {
		a, err := assigned()
		if err != nil {
			return nil, err
		}
		filters = append(filters, ranking.ByArchetype(a.Names(), v))
	}
	return filters, nil
}
