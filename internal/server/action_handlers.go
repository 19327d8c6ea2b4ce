package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/parceltrack/internal/actions"
	"github.com/matthieukhl/parceltrack/internal/apperr"
	"github.com/matthieukhl/parceltrack/internal/carrier"
	"github.com/matthieukhl/parceltrack/internal/view"
)

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, apperr.ValidationErr("Invalid request body", nil))
		return false
	}
	return true
}

func (s *Server) respond(c *gin.Context, res *actions.Result) {
	s.vm.Apply(res)
	c.JSON(http.StatusOK, gin.H{
		"result":   res,
		"criteria": s.vm.Criteria(),
	})
}

func (s *Server) addOrder(c *gin.Context) {
	var in actions.AddOrderInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := s.dispatcher.AddOrder(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	s.respond(c, res)
}

func (s *Server) updateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in actions.UpdateOrderInput
	if !bindJSON(c, &in) {
		return
	}
	in.ID = id

	res, err := s.dispatcher.UpdateOrder(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	s.respond(c, res)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := s.dispatcher.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	s.respond(c, res)
}

func (s *Server) refreshOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := s.dispatcher.RefreshTracking(c.Request.Context(), c.DefaultQuery("carrier", carrier.Cainiao), id)
	if err != nil {
		fail(c, err)
		return
	}
	s.respond(c, res)
}

// refreshAll answers with the transient status line even when the refresh failed.
func (s *Server) refreshAll(c *gin.Context) {
	res, err := s.dispatcher.RefreshAll(c.Request.Context(), c.DefaultQuery("carrier", carrier.Cainiao))
	if err != nil {
		if res == nil || res.Status == nil {
			fail(c, err)
			return
		}
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error":      apperr.PublicMessage(err),
			"request_id": GetRequestID(c),
			"result":     res,
		})
		return
	}
	s.respond(c, res)
}

func (s *Server) importOrders(c *gin.Context) {
	var in actions.ImportInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := s.dispatcher.ImportOrders(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":   res,
		"previews": view.ImportPreviews(res.Imported),
	})
}

func (s *Server) doarAPIKeyStatus(c *gin.Context) {
	st, err := s.dispatcher.DoarAPIKeyStatus(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) saveDoarAPIKey(c *gin.Context) {
	var in actions.APIKeyInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := s.dispatcher.SaveDoarAPIKey(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	s.respond(c, res)
}

func (s *Server) lastUpdates(c *gin.Context) {
	lu, err := s.dispatcher.LastUpdates(c.Request.Context())
	if err != nil {
		var ae *apperr.AppError
		if errors.As(err, &ae) && ae.Kind == apperr.Server && ae.Status == http.StatusNotFound {
			// Older tracker builds have no auto-update endpoint.
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lu)
}
