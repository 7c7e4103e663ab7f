package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/retailpk/fbrpos-api/internal/application/service"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/request"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/response"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// BranchHandler handles branch and device HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// List handles listing branches
func (h *BranchHandler) List(c *gin.Context) {
	var filter struct {
		Search  string `form:"search"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	result, err := h.branchService.ListBranches(c.Request.Context(), params, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Branches retrieved successfully", result)
}

// Get handles getting a single branch
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "branch ID")
	if !ok {
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved successfully", branch)
}

// Create handles creating a branch
func (h *BranchHandler) Create(c *gin.Context) {
	var req request.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), &service.CreateBranchInput{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Province:      req.Province,
		NTN:           req.NTN,
		STRN:          req.STRN,
		FBRBranchCode: req.FBRBranchCode,
		SaleTypeCode:  req.SaleTypeCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", branch)
}

// Update handles updating a branch
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "branch ID")
	if !ok {
		return
	}

	var req request.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), &service.UpdateBranchInput{
		BranchID:     id,
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		NTN:          req.NTN,
		STRN:         req.STRN,
		SaleTypeCode: req.SaleTypeCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated successfully", branch)
}

// Delete handles deleting a branch
func (h *BranchHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "branch ID")
	if !ok {
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListDevices handles listing all registered devices
func (h *BranchHandler) ListDevices(c *gin.Context) {
	var filter struct {
		Search  string `form:"search"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	result, err := h.branchService.ListDevices(c.Request.Context(), params, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Devices retrieved successfully", result)
}

// ListBranchDevices handles listing the devices registered under a branch
func (h *BranchHandler) ListBranchDevices(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "branch ID")
	if !ok {
		return
	}

	devices, err := h.branchService.ListBranchDevices(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Devices retrieved successfully", devices)
}

// GetDevice handles getting a single device
func (h *BranchHandler) GetDevice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "device ID")
	if !ok {
		return
	}

	device, err := h.branchService.GetDevice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Device retrieved successfully", device)
}

// CreateDevice handles registering a device under a branch
func (h *BranchHandler) CreateDevice(c *gin.Context) {
	branchID, ok := parseUUIDParam(c, "id", "branch ID")
	if !ok {
		return
	}

	var req request.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	device, err := h.branchService.CreateDevice(c.Request.Context(), &service.CreateDeviceInput{
		BranchID:         branchID,
		Name:             req.Name,
		DeviceIdentifier: req.DeviceIdentifier,
		FBRPosRegNo:      req.FBRPosRegNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Device registered successfully", device)
}

// UpdateDevice handles updating a device
func (h *BranchHandler) UpdateDevice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "device ID")
	if !ok {
		return
	}

	var req request.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	device, err := h.branchService.UpdateDevice(c.Request.Context(), &service.UpdateDeviceInput{
		DeviceID:    id,
		Name:        req.Name,
		FBRPosRegNo: req.FBRPosRegNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Device updated successfully", device)
}

// DeleteDevice handles deleting a device
func (h *BranchHandler) DeleteDevice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "device ID")
	if !ok {
		return
	}

	if err := h.branchService.DeleteDevice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
