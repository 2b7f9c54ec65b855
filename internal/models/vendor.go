package models

// Vendor is a contractor available for maintenance work orders
type Vendor struct {
	ID        int64  `json:"id"`
	OrgID     int64  `json:"org_id"`
	Name      string `json:"name"`
	Trade     string `json:"trade"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedAt int64  `json:"created_at"`
}

// CreateVendorRequest is the request body for creating a vendor
type CreateVendorRequest struct {
	Name  string `json:"name"`
	Trade string `json:"trade"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
