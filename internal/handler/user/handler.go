package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/record-api/internal/middleware"
	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/service/user"
	"github.com/medrec/record-api/pkg/httputil"
)

type Handler struct {
	svc  *user.Service
	auth *middleware.AuthMiddleware
}

func NewHandler(svc *user.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.auth.RequireRoles(model.RoleHospitalAdmin), h.CreateStaff)
		users.GET("/me/profile", h.MyProfile)
		users.PUT("/me/profile/patient", h.auth.RequireRoles(model.RolePatient), h.UpdatePatientProfile)
		users.GET("/patients/search", h.auth.RequireRoles(model.RoleDoctor), h.SearchPatients)
		users.GET("/admin/analytics", h.auth.RequireRoles(model.RoleHospitalAdmin), h.Analytics)
	}
}

func (h *Handler) CreateStaff(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.CreateStaff(c.Request.Context(), admin, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondCreated(c, created)
}

func (h *Handler) MyProfile(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	profile, err := h.svc.ProfileFor(c.Request.Context(), caller)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, profile)
}

func (h *Handler) UpdatePatientProfile(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	var req model.PatientProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.svc.UpdatePatientProfile(c.Request.Context(), caller, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, profile)
}

func (h *Handler) SearchPatients(c *gin.Context) {
	results, err := h.svc.SearchPatients(c.Request.Context(), c.Query("query"))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, results)
}

func (h *Handler) Analytics(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	analytics, err := h.svc.Analytics(c.Request.Context(), admin)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, analytics)
}
