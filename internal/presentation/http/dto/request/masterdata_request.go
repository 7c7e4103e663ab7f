package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	NTN     *string `json:"ntn" binding:"omitempty,max=20"`
	CNIC    *string `json:"cnic" binding:"omitempty,max=20"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	NTN     *string `json:"ntn" binding:"omitempty,max=20"`
	CNIC    *string `json:"cnic" binding:"omitempty,max=20"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// CreateBranchRequest represents a branch creation request
type CreateBranchRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Address       *string `json:"address"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	Province      *string `json:"province" binding:"omitempty,max=100"`
	NTN           string  `json:"ntn" binding:"required,max=20"`
	STRN          *string `json:"strn" binding:"omitempty,max=20"`
	FBRBranchCode string  `json:"fbr_branch_code" binding:"required,max=50"`
	SaleTypeCode  string  `json:"sale_type_code" binding:"omitempty,max=20"`
}

// UpdateBranchRequest represents a branch update request
type UpdateBranchRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address      *string `json:"address"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	Province     *string `json:"province" binding:"omitempty,max=100"`
	NTN          *string `json:"ntn" binding:"omitempty,max=20"`
	STRN         *string `json:"strn" binding:"omitempty,max=20"`
	SaleTypeCode *string `json:"sale_type_code" binding:"omitempty,max=20"`
}

// CreateDeviceRequest represents a device registration request
type CreateDeviceRequest struct {
	Name             string `json:"name" binding:"required,min=2,max=255"`
	DeviceIdentifier string `json:"device_identifier" binding:"required,max=100"`
	FBRPosRegNo      string `json:"fbr_pos_reg_no" binding:"required,max=50"`
}

// UpdateDeviceRequest represents a device update request
type UpdateDeviceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	FBRPosRegNo *string `json:"fbr_pos_reg_no" binding:"omitempty,max=50"`
}
