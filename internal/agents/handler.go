package agents

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/agents", h.List)
	r.POST("/agents", h.Create)
	r.PUT("/agents/batch", h.BatchSave)
	r.PUT("/agents/:id", h.Update)
	r.DELETE("/agents/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if v := c.Query("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.Active = &b
		}
	}
	q.Order = c.Query("order")

	items, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Header("Location", "/agents/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	var req UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) BatchSave(c *gin.Context) {
	var req BatchSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.BatchSave(c.Request.Context(), req)
	if err != nil {
		// Rows applied before the failure stay committed; report both.
		body := apiErrFrom(err)
		c.JSON(toHTTPStatus(err), gin.H{"error": body.Error, "applied": res})
		return
	}
	c.JSON(http.StatusOK, res)
}
