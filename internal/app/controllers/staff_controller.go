package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/app/services"
	"github.com/educompact/school-records/internal/middleware"
)

// StaffController handles staff record operations
type StaffController struct {
	staffService services.StaffService
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService services.StaffService) *StaffController {
	return &StaffController{
		staffService: staffService,
	}
}

// ListStaff retrieves staff records
// @Summary List staff
// @Description Retrieves staff matching an optional search term, newest first, with all child collections
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches first name, surname, staff ID, designation or email"
// @Success 200 {object} dto.StaffListResponse "Staff retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	staff, err := c.staffService.List(ctx, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if staff == nil {
		staff = []models.Staff{}
	}

	ctx.JSON(http.StatusOK, dto.StaffListResponse{Staff: staff})
}

// GetStaff retrieves a staff member by ID
// @Summary Get staff details
// @Description Retrieves a staff member with emergency contacts, profile and exit record attached
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID" Format(int64) minimum(1)
// @Success 200 {object} models.Staff "Staff member retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid staff ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{id} [get]
func (c *StaffController) GetStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "staff")
	if !ok {
		return
	}

	staff, err := c.staffService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// CreateStaff creates a staff record
// @Summary Create a staff member
// @Description Creates a staff member together with its child rows in one transaction
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StaffRequest true "Staff record"
// @Success 201 {object} models.Staff "Staff member created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.StaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid staff data", Details: err.Error()})
		return
	}

	staff, err := c.staffService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, staff)
}

// UpdateStaff replaces a staff record
// @Summary Update a staff member
// @Description Replaces the staff member's fields and all child rows atomically
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID" Format(int64) minimum(1)
// @Param request body dto.StaffRequest true "Full staff record"
// @Success 200 {object} models.Staff "Staff member updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{id} [put]
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "staff")
	if !ok {
		return
	}

	var req dto.StaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid staff data", Details: err.Error()})
		return
	}

	staff, err := c.staffService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// DeleteStaff deletes a staff record
// @Summary Delete a staff member
// @Description Deletes a staff member; child rows are removed by the schema cascade
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID" Format(int64) minimum(1)
// @Success 200 {object} dto.MessageResponse "Staff member deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid staff ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{id} [delete]
func (c *StaffController) DeleteStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "staff")
	if !ok {
		return
	}

	if err := c.staffService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Staff member deleted successfully"})
}
