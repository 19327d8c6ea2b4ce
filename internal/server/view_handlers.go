package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/matthieukhl/parceltrack/internal/apperr"
	"github.com/matthieukhl/parceltrack/internal/filter"
	"github.com/matthieukhl/parceltrack/internal/models"
	"github.com/matthieukhl/parceltrack/internal/view"
)

// criteriaFromQuery overlays the filter query parameters on the live
// criteria. Parameters that are absent keep their current value.
func criteriaFromQuery(c *gin.Context, current filter.Criteria) (filter.Criteria, error) {
	out := current
	if v, ok := c.GetQuery("status"); ok {
		out.Status = strings.TrimSpace(v)
	}
	if v, ok := c.GetQuery("search"); ok {
		out.Search = v
	}
	if v, ok := c.GetQuery("hide_delivered"); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return out, apperr.ValidationErr("hide_delivered must be true or false", map[string]string{"hide_delivered": "bool"})
		}
		out.HideDelivered = b
	}
	if v, ok := c.GetQuery("sort"); ok {
		key, err := filter.ParseSortKey(v)
		if err != nil {
			return out, apperr.ValidationErr(err.Error(), map[string]string{"sort": "oneof"})
		}
		out.Sort = key
	}
	return out, nil
}

func (s *Server) applyQuery(c *gin.Context) bool {
	crit, err := criteriaFromQuery(c, s.vm.Criteria())
	if err != nil {
		fail(c, err)
		return false
	}
	s.vm.SetCriteria(crit)
	return true
}

func (s *Server) listOrders(c *gin.Context) {
	if !s.applyQuery(c) {
		return
	}
	c.JSON(http.StatusOK, s.vm.View())
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, apperr.ValidationErr("Invalid order ID", map[string]string{"id": "gt"}))
		return 0, false
	}
	return id, true
}

func (s *Server) findOrder(c *gin.Context) (models.Order, bool) {
	id, ok := parseID(c)
	if !ok {
		return models.Order{}, false
	}
	o, ok := s.vm.Store().Find(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found", "request_id": GetRequestID(c)})
		return models.Order{}, false
	}
	return o, true
}

func (s *Server) getOrder(c *gin.Context) {
	o, ok := s.findOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order": o,
		"row":   s.vm.Renderer().Row(o),
	})
}

func (s *Server) orderEvents(c *gin.Context) {
	o, ok := s.findOrder(c)
	if !ok {
		return
	}
	ev, ok := view.TrackingEvents(o)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tracking events available for this order."})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) orderDoarEvents(c *gin.Context) {
	o, ok := s.findOrder(c)
	if !ok {
		return
	}
	ev, ok := view.DoarEvents(o)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No Doar Israel events available for this order."})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) orderSubItems(c *gin.Context) {
	o, ok := s.findOrder(c)
	if !ok {
		return
	}
	items, ok := s.vm.Renderer().SubItems(o)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "This order has no sub-items."})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) exportCSV(c *gin.Context) {
	if !s.applyQuery(c) {
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.vm.ExportFilename()))
	c.Status(http.StatusOK)
	if err := s.vm.Export(c.Writer); err != nil {
		s.logger.Error("Error exporting orders", "err", err, "request_id", GetRequestID(c))
	}
}

func (s *Server) reload(c *gin.Context) {
	ran, err := s.vm.Store().Reload(c.Request.Context())
	if err != nil {
		fail(c, apperr.TransportErr("Error loading orders. Please try again.", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reloaded": ran,
		"total":    s.vm.Store().Total(),
	})
}

func (s *Server) clearFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"criteria": s.vm.ClearFilters()})
}
