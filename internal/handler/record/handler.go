package record

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medrec/record-api/internal/middleware"
	"github.com/medrec/record-api/internal/model"
	"github.com/medrec/record-api/internal/service/record"
	"github.com/medrec/record-api/pkg/httputil"
)

type Handler struct {
	svc  *record.Service
	auth *middleware.AuthMiddleware
}

func NewHandler(svc *record.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/records")
	{
		records.POST("", h.auth.RequireRoles(model.RoleDoctor), h.Create)
		records.GET("/:id", h.Get)
		records.POST("/:id/labs", h.auth.RequireRoles(model.RoleDoctor), h.CreateLabTest)
		records.GET("/patient/:id", h.ListForPatient)
		records.GET("/patient/:id/labs", h.ListLabTestsForPatient)
	}
}

func (h *Handler) Create(c *gin.Context) {
	doctor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	var req model.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), doctor, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondCreated(c, created)
}

func (h *Handler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("invalid record id"))
		return
	}

	found, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, found)
}

func (h *Handler) ListForPatient(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("invalid patient id"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.svc.ListForPatient(c.Request.Context(), caller, patientID, limit, offset)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, records)
}

func (h *Handler) CreateLabTest(c *gin.Context) {
	doctor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("invalid record id"))
		return
	}

	var req model.CreateLabTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.CreateLabTest(c.Request.Context(), doctor, recordID, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondCreated(c, created)
}

func (h *Handler) ListLabTestsForPatient(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("could not validate credentials"))
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("invalid patient id"))
		return
	}

	tests, err := h.svc.ListLabTestsForPatient(c.Request.Context(), caller, patientID)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}

	httputil.RespondOK(c, tests)
}
