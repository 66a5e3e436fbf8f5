package hospital

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medrec/record-api/internal/middleware"
	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/service/hospital"
	"github.com/medrec/record-api/pkg/httputil"
)

type Handler struct {
	svc  *hospital.Service
	auth *middleware.AuthMiddleware
}

func NewHandler(svc *hospital.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospitals", h.auth.RequireRoles(model.RoleHospitalAdmin))
	{
		hospitals.POST("", h.Create)
		hospitals.GET("", h.List)
		hospitals.GET("/:id", h.Get)
		hospitals.PUT("/:id", h.Update)
	}
}

func (h *Handler) Create(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	var req model.CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), admin, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondCreated(c, created)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	hospitals, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, hospitals)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("invalid hospital id"))
		return
	}

	found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("invalid hospital id"))
		return
	}

	var req model.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), admin, id, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, updated)
}
